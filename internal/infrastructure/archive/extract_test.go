package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "natives.jar")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestNormalizeExcludes(t *testing.T) {
	got := NormalizeExcludes([]string{"META-INF/", "", "  ", "*.txt"})
	assert.Equal(t, []string{"META-INF/**", "*.txt"}, got)
}

func TestExcluded(t *testing.T) {
	patterns := NormalizeExcludes([]string{"META-INF/", "**/*.sha1"})

	tests := []struct {
		name string
		want bool
	}{
		{"META-INF/MANIFEST.MF", true},
		{"META-INF/sub/deep.SF", true},
		{"lib/liblwjgl.so.sha1", true},
		{"liblwjgl.so", false},
		{"native/META-INF.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excluded(tt.name, patterns))
		})
	}
}

func TestExtract(t *testing.T) {
	src := writeZip(t, map[string]string{
		"liblwjgl.so":          "elf",
		"sub/libopenal.so":     "elf2",
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
		"META-INF/LWJGL.SF":    "sig",
	})
	dest := filepath.Join(t.TempDir(), "natives")

	res, err := New().Extract(context.Background(), src, dest, []string{"META-INF/"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Extracted)
	assert.Equal(t, 2, res.Skipped)

	data, err := os.ReadFile(filepath.Join(dest, "liblwjgl.so"))
	require.NoError(t, err)
	assert.Equal(t, "elf", string(data))

	data, err = os.ReadFile(filepath.Join(dest, "sub", "libopenal.so"))
	require.NoError(t, err)
	assert.Equal(t, "elf2", string(data))

	assert.NoDirExists(t, filepath.Join(dest, "META-INF"))
}

func TestExtractWithoutExcludes(t *testing.T) {
	src := writeZip(t, map[string]string{
		"a.dll":                "x",
		"META-INF/MANIFEST.MF": "m",
	})
	dest := t.TempDir()

	res, err := New().Extract(context.Background(), src, dest, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Extracted)
	assert.FileExists(t, filepath.Join(dest, "META-INF", "MANIFEST.MF"))
}

func TestExtractRejectsZipSlip(t *testing.T) {
	src := writeZip(t, map[string]string{
		"../escape.so": "bad",
	})
	dest := filepath.Join(t.TempDir(), "natives")

	_, err := New().Extract(context.Background(), src, dest, nil)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "escape.so"))
}

func TestExtractRejectsNonArchive(t *testing.T) {
	src := filepath.Join(t.TempDir(), "fake.jar")
	require.NoError(t, os.WriteFile(src, []byte("plain text, not a zip"), 0644))

	_, err := New().Extract(context.Background(), src, t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrNotArchive)
}

func TestExtractCancelled(t *testing.T) {
	src := writeZip(t, map[string]string{"a.so": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, src, t.TempDir(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
