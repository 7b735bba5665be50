package process

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandOrder(t *testing.T) {
	spec := NewSpec()
	spec.JVMPath = "java"
	spec.MinMemory = 1024
	spec.MaxMemory = 2048
	spec.PermGen = 128
	spec.Flags = append(spec.Flags, "-Djava.library.path=/tmp/natives", "-Xdebug")
	spec.AddClasspath(filepath.Join("libs", "a.jar"))
	spec.AddClasspath(filepath.Join("libs", "b.jar"))
	spec.MainClass = "net.minecraft.client.Minecraft"
	spec.Args = []string{"--username", "Steve"}

	cmd := spec.Command()
	assert.Equal(t, []string{
		"java",
		"-Xms1024M",
		"-Xmx2048M",
		"-XX:MaxPermSize=128M",
		"-Djava.library.path=/tmp/natives",
		"-Xdebug",
		"-cp",
		filepath.Join("libs", "a.jar") + string(os.PathListSeparator) + filepath.Join("libs", "b.jar"),
		"net.minecraft.client.Minecraft",
		"--username",
		"Steve",
	}, cmd)
}

func TestCommandOmitsUnsetMemory(t *testing.T) {
	spec := NewSpec()
	spec.JVMPath = "java"
	spec.MainClass = "Main"

	assert.Equal(t, []string{"java", "Main"}, spec.Command())
}

func TestAddClasspathDeduplicates(t *testing.T) {
	spec := NewSpec()

	assert.True(t, spec.AddClasspath("/libs/a.jar"))
	assert.True(t, spec.AddClasspath("/libs/b.jar"))
	assert.False(t, spec.AddClasspath("/libs/a.jar"))
	assert.False(t, spec.AddClasspath("/libs/./a.jar"))

	assert.Equal(t, []string{"/libs/a.jar", "/libs/b.jar"}, spec.Classpath())
}

func TestRemoveClasspath(t *testing.T) {
	spec := NewSpec()
	spec.AddClasspath("/libs/a.jar")
	spec.AddClasspath("/libs/b.jar")

	assert.True(t, spec.RemoveClasspath("/libs/a.jar"))
	assert.False(t, spec.RemoveClasspath("/libs/a.jar"))
	assert.Equal(t, []string{"/libs/b.jar"}, spec.Classpath())

	// removed entries can be re-added
	assert.True(t, spec.AddClasspath("/libs/a.jar"))
	assert.Equal(t, []string{"/libs/b.jar", "/libs/a.jar"}, spec.Classpath())
}

func TestRemoveFlag(t *testing.T) {
	spec := NewSpec()
	spec.Flags = []string{"-a", "-b", "-a"}

	assert.Equal(t, 2, spec.RemoveFlag("-a"))
	assert.Equal(t, []string{"-b"}, spec.Flags)
}

func TestTryJVMPath(t *testing.T) {
	home := t.TempDir()
	bin := filepath.Join(home, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))

	name := "java"
	if runtime.GOOS == "windows" {
		name = "javaw.exe"
	}
	binary := filepath.Join(bin, name)
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755))

	t.Run("home directory", func(t *testing.T) {
		spec := NewSpec()
		assert.True(t, spec.TryJVMPath(home))
		assert.Equal(t, binary, spec.JVMPath)
	})

	t.Run("binary", func(t *testing.T) {
		spec := NewSpec()
		assert.True(t, spec.TryJVMPath(binary))
		assert.Equal(t, binary, spec.JVMPath)
	})

	t.Run("missing", func(t *testing.T) {
		spec := NewSpec()
		spec.JVMPath = "java"
		assert.False(t, spec.TryJVMPath(filepath.Join(home, "nope")))
		assert.Equal(t, "java", spec.JVMPath)
	})

	t.Run("home without binary", func(t *testing.T) {
		spec := NewSpec()
		spec.JVMPath = "java"
		assert.False(t, spec.TryJVMPath(t.TempDir()))
		assert.Equal(t, "java", spec.JVMPath)
	})
}

func TestDefaultRuntimeFallsBackToPath(t *testing.T) {
	t.Setenv("JAVA_HOME", t.TempDir())
	assert.Equal(t, "java", DefaultRuntime())

	t.Setenv("JAVA_HOME", "")
	assert.Equal(t, "java", DefaultRuntime())
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"simple", "-Xdebug -Dfoo=bar", []string{"-Xdebug", "-Dfoo=bar"}},
		{"extra whitespace", "  -a   -b  ", []string{"-a", "-b"}},
		{"quoted", `-Dname="hello world" -x`, []string{"-Dname=hello world", "-x"}},
		{"single quoted", `'-Dpath=/a b/c'`, []string{"-Dpath=/a b/c"}},
		{"windows path", `-Djava.io.tmpdir=C:\Temp\mc -Dname="a b"`, []string{`-Djava.io.tmpdir=C:\Temp\mc`, "-Dname=a b"}},
		{"dollar is literal", `-Dx=$HOME -Dy=${user.home} -Dz=$(`, []string{"-Dx=$HOME", "-Dy=${user.home}", "-Dz=$("}},
		{"shell operators are literal", `-Dlist=a;b|c -Dcmd="kill -9 %p"`, []string{"-Dlist=a;b|c", "-Dcmd=kill -9 %p"}},
		{"empty quoted field", `-a "" -b`, []string{"-a", "", "-b"}},
		{"nested quote kinds", `-Dmsg="it's"`, []string{"-Dmsg=it's"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.raw)
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitArgsUnterminatedQuote(t *testing.T) {
	_, err := SplitArgs(`-Dname="unterminated`)
	assert.Error(t, err)
}

func TestStart(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	dir := filepath.Join(t.TempDir(), "work")
	spec := NewSpec()
	spec.JVMPath = sh
	spec.Flags = []string{"-c"}
	spec.MainClass = "pwd"

	var out strings.Builder
	handle, err := Start(spec, StartOptions{Dir: dir, Stdout: &out})
	require.NoError(t, err)
	assert.NotZero(t, handle.PID())
	require.NoError(t, handle.Wait())

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStartMissingBinary(t *testing.T) {
	spec := NewSpec()
	spec.JVMPath = filepath.Join(t.TempDir(), "no-such-java")
	spec.MainClass = "Main"

	_, err := Start(spec, StartOptions{})
	assert.Error(t, err)
}
