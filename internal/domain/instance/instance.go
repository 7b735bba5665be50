// Package instance defines the persisted instance record and its stores.
//
// The launch core only ever flips Installed to false when an installation
// turns out to be untrustworthy, then commits the record through a Store.
package instance

import (
	"context"
	"errors"
	"path/filepath"
)

var ErrNotFound = errors.New("instance not found")

// Instance is a configured, user-facing application install
type Instance struct {
	Title       string `db:"title" json:"title"`
	Dir         string `db:"dir" json:"dir"`
	Installed   bool   `db:"installed" json:"installed"`
	CustomJar   string `db:"custom_jar" json:"custom_jar,omitempty"`
	ManifestURL string `db:"manifest_url" json:"manifest_url,omitempty"`
}

// ContentDir is the working directory of the launched process
func (i *Instance) ContentDir() string {
	return filepath.Join(i.Dir, "minecraft")
}

// VersionPath is the location of the instance's runtime manifest
func (i *Instance) VersionPath() string {
	return filepath.Join(i.Dir, "version.json")
}

// CustomJarPath is the instance-specific main artifact, used in place of the
// shared default when it exists on disk.
func (i *Instance) CustomJarPath() string {
	if i.CustomJar != "" {
		return i.CustomJar
	}
	return filepath.Join(i.ContentDir(), "bin", "minecraft.jar")
}

// Store persists instance records
type Store interface {
	Commit(ctx context.Context, inst *Instance) error
}

// StoreFunc adapts a function to Store
type StoreFunc func(ctx context.Context, inst *Instance) error

// Commit calls f
func (f StoreFunc) Commit(ctx context.Context, inst *Instance) error {
	return f(ctx, inst)
}
