package arguments

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/GriffinCanCode/launchpad/internal/domain/instance"
	"github.com/GriffinCanCode/launchpad/internal/domain/manifest"
	"github.com/GriffinCanCode/launchpad/internal/domain/process"
	"github.com/GriffinCanCode/launchpad/internal/domain/session"
	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
	"github.com/GriffinCanCode/launchpad/internal/shared/platform"
)

const (
	// MinWindowWidth is the smallest width that produces window arguments
	MinWindowWidth = 10

	dockIconAsset = "icons/minecraft.icns"
	dockName      = "Minecraft"
	heapDumpFlag  = "-XX:HeapDumpPath=MojangTricksIntelDriversForPerformance_javaw.exe_minecraft.exe.heapdump"
)

// Window is the requested game window size
type Window struct {
	Width  int
	Height int
}

// Input carries everything the assembler reads
type Input struct {
	Manifest   *manifest.Manifest
	Index      *manifest.AssetIndex
	Instance   *instance.Instance
	Session    *session.Session
	Layout     paths.Layout
	Env        platform.Environment
	VirtualDir string
	Window     Window
	UserFlags  string
}

// Placeholders builds the substitution map for the argument template
func Placeholders(in Input) (map[string]string, error) {
	props, err := in.Session.PropertiesJSON()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"version_name":      in.Manifest.ID,
		"auth_access_token": in.Session.AccessToken,
		"auth_session":      in.Session.SessionToken(),
		"auth_player_name":  in.Session.Name,
		"auth_uuid":         in.Session.UUID,
		"profile_name":      in.Session.Name,
		"user_type":         string(in.Session.UserType),
		"user_properties":   props,
		"game_directory":    absolute(in.Instance.ContentDir()),
		"game_assets":       absolute(in.VirtualDir),
		"assets_root":       absolute(in.Layout.AssetsDir()),
		"assets_index_name": in.Manifest.AssetIndexName(),
	}, nil
}

// WindowArgs returns the window size arguments, or nil when the width is
// below MinWindowWidth.
func WindowArgs(w Window) []string {
	if w.Width < MinWindowWidth {
		return nil
	}
	return []string{"--width", strconv.Itoa(w.Width), "--height", strconv.Itoa(w.Height)}
}

// PlatformFlags returns the runtime flags specific to env
func PlatformFlags(env platform.Environment, layout paths.Layout, index *manifest.AssetIndex) []string {
	switch env.Platform {
	case platform.MacOSX:
		if icon := index.ObjectPath(layout, dockIconAsset); icon != "" {
			return []string{"-Xdock:icon=" + absolute(icon), "-Xdock:name=" + dockName}
		}
	case platform.Windows:
		return []string{heapDumpFlag}
	}
	return nil
}

// MainJar returns the instance's custom jar if present, else the version
// jar from the shared store.
func MainJar(inst *instance.Instance, m *manifest.Manifest, layout paths.Layout) string {
	custom := inst.CustomJarPath()
	if info, err := os.Stat(custom); err == nil && !info.IsDir() {
		return custom
	}
	return layout.VersionJar(m.ID)
}

// Assemble appends platform and user flags, the main jar, the main class
// and the substituted application arguments to spec.
func Assemble(spec *process.Spec, in Input) error {
	userFlags, err := process.SplitArgs(in.UserFlags)
	if err != nil {
		return err
	}

	values, err := Placeholders(in)
	if err != nil {
		return fmt.Errorf("failed to build placeholders: %w", err)
	}

	spec.Flags = append(spec.Flags, PlatformFlags(in.Env, in.Layout, in.Index)...)
	spec.Flags = append(spec.Flags, userFlags...)

	spec.AddClasspath(MainJar(in.Instance, in.Manifest, in.Layout))
	spec.MainClass = in.Manifest.MainClass

	spec.Args = append(spec.Args, Expand(in.Manifest.ArgumentTemplate(), values)...)
	spec.Args = append(spec.Args, WindowArgs(in.Window)...)
	return nil
}

func absolute(path string) string {
	if path == "" {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
