package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout resolves launcher paths relative to a base directory
type Layout struct {
	Base string
}

// New returns a Layout rooted at base
func New(base string) Layout {
	return Layout{Base: filepath.Clean(base)}
}

// LibrariesDir returns the shared dependency store root
func (l Layout) LibrariesDir() string {
	return filepath.Join(l.Base, "libraries")
}

// VersionsDir returns the directory holding default main artifacts
func (l Layout) VersionsDir() string {
	return filepath.Join(l.Base, "versions")
}

// VersionJar returns the default main artifact path for a manifest id
func (l Layout) VersionJar(versionID string) string {
	return filepath.Join(l.VersionsDir(), versionID, versionID+".jar")
}

// AssetsDir returns the shared asset-store root
func (l Layout) AssetsDir() string {
	return filepath.Join(l.Base, "assets")
}

// IndexPath returns the asset index document path for an index name
func (l Layout) IndexPath(indexName string) string {
	return filepath.Join(l.AssetsDir(), "indexes", indexName+".json")
}

// ObjectPath returns the content-addressed object path for a hash
func (l Layout) ObjectPath(hash string) string {
	hash = strings.ToLower(hash)
	if len(hash) < 2 {
		return filepath.Join(l.AssetsDir(), "objects", hash)
	}
	return filepath.Join(l.AssetsDir(), "objects", hash[:2], hash)
}

// VirtualDir returns the materialized virtual asset directory for an index
func (l Layout) VirtualDir(indexName string) string {
	return filepath.Join(l.AssetsDir(), "virtual", indexName)
}

// InstancesDir returns the directory holding instance directories
func (l Layout) InstancesDir() string {
	return filepath.Join(l.Base, "instances")
}

// NativesDir returns the root of attempt-scoped extraction directories
func (l Layout) NativesDir() string {
	return filepath.Join(l.Base, "temp", "natives")
}

// ExtractDir returns the extraction directory for one launch attempt
func (l Layout) ExtractDir(attemptID string) string {
	return filepath.Join(l.NativesDir(), attemptID)
}

// DatabasePath returns the instance store location
func (l Layout) DatabasePath() string {
	return filepath.Join(l.Base, "launcher.db")
}

// StandardDirectories returns all directories that should exist
func (l Layout) StandardDirectories() []string {
	return []string{
		l.LibrariesDir(),
		l.VersionsDir(),
		filepath.Join(l.AssetsDir(), "indexes"),
		filepath.Join(l.AssetsDir(), "objects"),
		l.InstancesDir(),
		l.NativesDir(),
	}
}

// ValidateName checks if a version, index or attempt name is safe for path construction
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("name cannot be an absolute path")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("name %q is not a plain name", name)
	}
	if filepath.Clean(name) != name || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q contains invalid path components", name)
	}
	return nil
}
