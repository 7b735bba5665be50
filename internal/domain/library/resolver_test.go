package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/launchpad/internal/domain/manifest"
	"github.com/GriffinCanCode/launchpad/internal/domain/process"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/archive"
	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
	"github.com/GriffinCanCode/launchpad/internal/shared/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, src, dest string, excludes []string) (archive.Result, error) {
	args := m.Called(ctx, src, dest, excludes)
	return args.Get(0).(archive.Result), args.Error(1)
}

var linux64 = platform.Environment{Platform: platform.Linux, Arch: "x86_64"}

func install(t *testing.T, layout paths.Layout, env platform.Environment, libs ...manifest.Library) {
	t.Helper()
	for _, lib := range libs {
		rel, err := lib.Path(env)
		require.NoError(t, err)
		full := filepath.Join(layout.LibrariesDir(), rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("jar"), 0644))
	}
}

func TestResolveClasspathOrderAndDedup(t *testing.T) {
	layout := paths.New(t.TempDir())
	a := manifest.Library{Name: "org.example:a:1.0"}
	b := manifest.Library{Name: "org.example:b:2.0"}
	dupA := manifest.Library{Name: " ORG.example:A:1.0 "}
	install(t, layout, linux64, a, b)

	spec := process.NewSpec()
	extractDir := filepath.Join(t.TempDir(), "natives")
	res, err := NewResolver(layout, linux64, &mockExtractor{}).Resolve(context.Background(), []manifest.Library{a, b, dupA}, extractDir, spec)
	require.NoError(t, err)

	pathA := filepath.Join(layout.LibrariesDir(), "org", "example", "a", "1.0", "a-1.0.jar")
	pathB := filepath.Join(layout.LibrariesDir(), "org", "example", "b", "2.0", "b-2.0.jar")
	assert.Equal(t, []string{pathA, pathB}, res.Classpath)
	assert.Equal(t, []string{pathA, pathB}, spec.Classpath())

	abs, _ := filepath.Abs(extractDir)
	assert.Equal(t, []string{NativePathFlag + abs}, spec.Flags)
}

func TestResolveWindowsDenyRule(t *testing.T) {
	layout := paths.New(t.TempDir())
	windows := platform.Environment{Platform: platform.Windows, Arch: "x86_64"}

	libs := make([]manifest.Library, 0, 30)
	denied := 0
	for i := 0; i < 30; i++ {
		lib := manifest.Library{Name: "org.example:lib" + string(rune('a'+i%26)) + string(rune('a'+i/26)) + ":1.0"}
		if i%3 == 0 {
			lib.Rules = []platform.Rule{
				{Action: platform.Allow},
				{Action: platform.Disallow, OS: &platform.OSRule{Name: platform.Windows}},
			}
			denied++
		}
		libs = append(libs, lib)
	}
	install(t, layout, windows, libs...)

	spec := process.NewSpec()
	res, err := NewResolver(layout, windows, &mockExtractor{}).Resolve(context.Background(), libs, t.TempDir(), spec)
	require.NoError(t, err)

	assert.Len(t, res.Classpath, len(libs)-denied)
	assert.Len(t, res.Skipped, denied)
}

func TestResolveMissingLibrary(t *testing.T) {
	layout := paths.New(t.TempDir())
	present := manifest.Library{Name: "org.example:a:1.0"}
	missing := manifest.Library{Name: "org.example:gone:1.0"}
	install(t, layout, linux64, present)

	spec := process.NewSpec()
	_, err := NewResolver(layout, linux64, &mockExtractor{}).Resolve(context.Background(), []manifest.Library{present, missing}, t.TempDir(), spec)
	require.Error(t, err)

	var missingErr *MissingLibraryError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, "org.example:gone:1.0", missingErr.Name)
	assert.Empty(t, spec.Flags)
}

func TestResolveNatives(t *testing.T) {
	layout := paths.New(t.TempDir())
	native := manifest.Library{
		Name:    "org.lwjgl:lwjgl-platform:2.9.0",
		Natives: map[string]string{"linux": "natives-linux", "windows": "natives-windows-${arch}"},
		Extract: &manifest.Extract{Exclude: []string{"META-INF/"}},
	}
	install(t, layout, linux64, native)
	extractDir := t.TempDir()

	nativePath := filepath.Join(layout.LibrariesDir(), "org", "lwjgl", "lwjgl-platform", "2.9.0", "lwjgl-platform-2.9.0-natives-linux.jar")
	ext := &mockExtractor{}
	ext.On("Extract", mock.Anything, nativePath, extractDir, []string{"META-INF/"}).Return(archive.Result{Extracted: 3}, nil)

	spec := process.NewSpec()
	res, err := NewResolver(layout, linux64, ext).Resolve(context.Background(), []manifest.Library{native}, extractDir, spec)
	require.NoError(t, err)

	ext.AssertExpectations(t)
	assert.Empty(t, spec.Classpath())
	assert.Equal(t, []string{nativePath}, res.Natives)
	assert.Equal(t, 3, res.Files)
}

func TestResolveClassifierWithoutExtractIsClasspath(t *testing.T) {
	layout := paths.New(t.TempDir())
	lib := manifest.Library{
		Name:    "org.lwjgl:lwjgl-platform:2.9.0",
		Natives: map[string]string{"linux": "natives-linux"},
	}
	install(t, layout, linux64, lib)

	ext := &mockExtractor{}
	spec := process.NewSpec()
	res, err := NewResolver(layout, linux64, ext).Resolve(context.Background(), []manifest.Library{lib}, t.TempDir(), spec)
	require.NoError(t, err)

	jar := filepath.Join(layout.LibrariesDir(), "org", "lwjgl", "lwjgl-platform", "2.9.0", "lwjgl-platform-2.9.0-natives-linux.jar")
	assert.Equal(t, []string{jar}, spec.Classpath())
	assert.Empty(t, res.Natives)
	ext.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveExtractionFailure(t *testing.T) {
	layout := paths.New(t.TempDir())
	native := manifest.Library{Name: "org.lwjgl:natives:1.0", Extract: &manifest.Extract{}}
	install(t, layout, linux64, native)

	ext := &mockExtractor{}
	ext.On("Extract", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(archive.Result{}, archive.ErrNotArchive)

	_, err := NewResolver(layout, linux64, ext).Resolve(context.Background(), []manifest.Library{native}, t.TempDir(), process.NewSpec())

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.ErrorIs(t, err, archive.ErrNotArchive)
}

func TestResolveInvalidName(t *testing.T) {
	layout := paths.New(t.TempDir())
	_, err := NewResolver(layout, linux64, nil).Resolve(context.Background(), []manifest.Library{{Name: "broken"}}, t.TempDir(), process.NewSpec())
	assert.ErrorIs(t, err, manifest.ErrCorrupt)
}

func TestResolveCancelled(t *testing.T) {
	layout := paths.New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(layout, linux64, nil).Resolve(ctx, []manifest.Library{{Name: "org.example:a:1.0"}}, t.TempDir(), process.NewSpec())
	assert.ErrorIs(t, err, context.Canceled)
}
