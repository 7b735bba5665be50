package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zip"
)

// ErrNotArchive is returned when the input is not a zip-family archive
var ErrNotArchive = errors.New("not a zip archive")

// Result summarizes one extraction
type Result struct {
	Extracted int
	Skipped   int
}

// Extractor unpacks zip and jar archives
type Extractor struct {
	// Sniff rejects inputs whose content is not zip-family before opening them
	Sniff bool
}

// New returns an Extractor that sniffs inputs
func New() *Extractor {
	return &Extractor{Sniff: true}
}

// NormalizeExcludes turns directory-prefix entries into subtree globs
// and drops empty entries.
func NormalizeExcludes(excludes []string) []string {
	out := make([]string, 0, len(excludes))
	for _, pattern := range excludes {
		pattern = strings.TrimSpace(filepath.ToSlash(pattern))
		if pattern == "" {
			continue
		}
		if strings.HasSuffix(pattern, "/") {
			pattern += "**"
		}
		out = append(out, pattern)
	}
	return out
}

// Excluded reports whether name matches any of the normalized patterns
func Excluded(name string, patterns []string) bool {
	name = strings.TrimSuffix(filepath.ToSlash(name), "/")
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Extract unpacks src into dest, skipping entries matched by excludes
func (e *Extractor) Extract(ctx context.Context, src, dest string, excludes []string) (Result, error) {
	var res Result

	if e.Sniff {
		if err := checkZip(src); err != nil {
			return res, err
		}
	}

	reader, err := zip.OpenReader(src)
	if err != nil {
		return res, fmt.Errorf("open %s: %w", src, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return res, fmt.Errorf("create %s: %w", dest, err)
	}
	root := filepath.Clean(dest) + string(os.PathSeparator)
	patterns := NormalizeExcludes(excludes)

	for _, file := range reader.File {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if Excluded(file.Name, patterns) {
			res.Skipped++
			continue
		}

		// zip-slip
		destPath := filepath.Join(dest, file.Name)
		if !strings.HasPrefix(destPath, root) {
			return res, fmt.Errorf("entry %q escapes destination", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return res, err
			}
			continue
		}

		if err := writeEntry(file, destPath); err != nil {
			return res, fmt.Errorf("extract %s: %w", file.Name, err)
		}
		res.Extracted++
	}

	return res, nil
}

func writeEntry(file *zip.File, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func checkZip(path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect %s: %w", path, err)
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is %s", ErrNotArchive, path, mtype.String())
}
