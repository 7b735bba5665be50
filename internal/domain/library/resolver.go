// Package library resolves a manifest's dependencies into classpath
// entries and extracted native libraries.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/launchpad/internal/domain/manifest"
	"github.com/GriffinCanCode/launchpad/internal/domain/process"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/archive"
	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
	"github.com/GriffinCanCode/launchpad/internal/shared/platform"
)

// NativePathFlag is the runtime flag naming the native search path
const NativePathFlag = "-Djava.library.path="

// MissingLibraryError is returned when a required artifact is absent
type MissingLibraryError struct {
	Name string
	Path string
}

func (e *MissingLibraryError) Error() string {
	return fmt.Sprintf("missing library %s (expected at %s)", e.Name, e.Path)
}

// ExtractionError is returned when a native archive cannot be unpacked
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract natives of %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor unpacks one archive
type Extractor interface {
	Extract(ctx context.Context, src, dest string, excludes []string) (archive.Result, error)
}

// Resolver walks a dependency set for one environment
type Resolver struct {
	layout    paths.Layout
	env       platform.Environment
	extractor Extractor
}

// NewResolver creates a resolver. A nil extractor uses archive.New().
func NewResolver(layout paths.Layout, env platform.Environment, extractor Extractor) *Resolver {
	if extractor == nil {
		extractor = archive.New()
	}
	return &Resolver{layout: layout, env: env, extractor: extractor}
}

// Result summarizes a resolution
type Result struct {
	Classpath []string
	Natives   []string
	Skipped   []string
	Files     int
}

// Resolve appends every applicable library to spec's classpath or
// extracts it into extractDir, then points the native search path at
// extractDir. The first missing artifact aborts the walk.
func (r *Resolver) Resolve(ctx context.Context, libs []manifest.Library, extractDir string, spec *process.Spec) (Result, error) {
	var res Result
	seen := make(map[string]struct{}, len(libs))

	for _, lib := range libs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		key := lib.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if !lib.Matches(r.env) {
			res.Skipped = append(res.Skipped, lib.Name)
			continue
		}

		rel, err := lib.Path(r.env)
		if err != nil {
			return res, fmt.Errorf("%w: %v", manifest.ErrCorrupt, err)
		}
		path := filepath.Join(r.layout.LibrariesDir(), rel)

		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return res, &MissingLibraryError{Name: lib.Name, Path: path}
		}

		if lib.Extract == nil {
			spec.AddClasspath(path)
			res.Classpath = append(res.Classpath, path)
			continue
		}

		out, err := r.extractor.Extract(ctx, path, extractDir, lib.Extract.Exclude)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			return res, &ExtractionError{Name: lib.Name, Err: err}
		}
		res.Natives = append(res.Natives, path)
		res.Files += out.Extracted
	}

	abs, err := filepath.Abs(extractDir)
	if err != nil {
		abs = extractDir
	}
	spec.Flags = append(spec.Flags, NativePathFlag+abs)

	return res, nil
}
