package process

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Spec is the accumulating build target of one launch attempt
type Spec struct {
	MinMemory int
	MaxMemory int
	PermGen   int
	JVMPath   string
	MainClass string
	Flags     []string
	Args      []string

	classpath []string
	seen      map[string]struct{}
}

// NewSpec returns an empty Spec using the default runtime binary
func NewSpec() *Spec {
	return &Spec{
		JVMPath: DefaultRuntime(),
		seen:    make(map[string]struct{}),
	}
}

// AddClasspath appends path unless it is already present
func (s *Spec) AddClasspath(path string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	key := filepath.Clean(path)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.classpath = append(s.classpath, key)
	return true
}

// RemoveClasspath drops path from the classpath
func (s *Spec) RemoveClasspath(path string) bool {
	key := filepath.Clean(path)
	if _, ok := s.seen[key]; !ok {
		return false
	}
	delete(s.seen, key)
	for i, entry := range s.classpath {
		if entry == key {
			s.classpath = append(s.classpath[:i], s.classpath[i+1:]...)
			break
		}
	}
	return true
}

// Classpath returns the classpath entries in insertion order
func (s *Spec) Classpath() []string {
	out := make([]string, len(s.classpath))
	copy(out, s.classpath)
	return out
}

// JoinedClasspath returns the classpath joined with the OS list separator
func (s *Spec) JoinedClasspath() string {
	return strings.Join(s.classpath, string(os.PathListSeparator))
}

// RemoveFlag drops every flag equal to flag
func (s *Spec) RemoveFlag(flag string) int {
	kept := s.Flags[:0]
	removed := 0
	for _, f := range s.Flags {
		if f == flag {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	s.Flags = kept
	return removed
}

// TryJVMPath sets the runtime binary from an override. A directory is
// treated as a runtime home and resolved to its bin/java binary. Returns
// false when nothing usable was found and the current path is kept.
func (s *Spec) TryJVMPath(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		s.JVMPath = path
		return true
	}
	for _, candidate := range runtimeCandidates(path) {
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			s.JVMPath = candidate
			return true
		}
	}
	return false
}

// Command renders the full argv
func (s *Spec) Command() []string {
	cmd := make([]string, 0, 8+len(s.Flags)+len(s.Args))
	cmd = append(cmd, s.JVMPath)
	if s.MinMemory > 0 {
		cmd = append(cmd, fmt.Sprintf("-Xms%dM", s.MinMemory))
	}
	if s.MaxMemory > 0 {
		cmd = append(cmd, fmt.Sprintf("-Xmx%dM", s.MaxMemory))
	}
	if s.PermGen > 0 {
		cmd = append(cmd, fmt.Sprintf("-XX:MaxPermSize=%dM", s.PermGen))
	}
	cmd = append(cmd, s.Flags...)
	if len(s.classpath) > 0 {
		cmd = append(cmd, "-cp", s.JoinedClasspath())
	}
	cmd = append(cmd, s.MainClass)
	cmd = append(cmd, s.Args...)
	return cmd
}

// String renders the command for logs
func (s *Spec) String() string {
	return strings.Join(s.Command(), " ")
}

// DefaultRuntime returns $JAVA_HOME's java binary if present, else "java"
// to be found on PATH.
func DefaultRuntime() string {
	if home := os.Getenv("JAVA_HOME"); home != "" {
		for _, candidate := range runtimeCandidates(home) {
			if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
				return candidate
			}
		}
	}
	return "java"
}

func runtimeCandidates(home string) []string {
	if runtime.GOOS == "windows" {
		return []string{
			filepath.Join(home, "bin", "javaw.exe"),
			filepath.Join(home, "bin", "java.exe"),
		}
	}
	return []string{filepath.Join(home, "bin", "java")}
}
