package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/launchpad/internal/domain/manifest"
	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
	"github.com/charlievieth/fastwalk"
	"golang.org/x/sync/errgroup"
)

// ErrVirtualizationFailed marks a failure to materialize the asset tree
var ErrVirtualizationFailed = errors.New("asset virtualization failed")

// ProgressFunc receives the completed fraction in [0, 1]
type ProgressFunc func(fraction float64)

// Virtualizer materializes the assets of an index and returns the directory
// the runtime should read them from.
type Virtualizer interface {
	Virtualize(ctx context.Context, indexName string, index *manifest.AssetIndex, progress ProgressFunc) (string, error)
}

// Stats describes the last materialization
type Stats struct {
	Linked  int
	Copied  int
	Reused  int
	Objects int
}

// TreeBuilder is the default Virtualizer
type TreeBuilder struct {
	layout  paths.Layout
	workers int

	mu    sync.Mutex
	stats Stats
}

// NewTreeBuilder creates a builder; workers <= 0 uses GOMAXPROCS
func NewTreeBuilder(layout paths.Layout, workers int) *TreeBuilder {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &TreeBuilder{layout: layout, workers: workers}
}

// Stats returns counters of the last Virtualize call
func (b *TreeBuilder) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Virtualize places every object of index under its logical name
func (b *TreeBuilder) Virtualize(ctx context.Context, indexName string, index *manifest.AssetIndex, progress ProgressFunc) (string, error) {
	if progress == nil {
		progress = func(float64) {}
	}
	if index == nil {
		return "", fmt.Errorf("%w: no asset index", ErrVirtualizationFailed)
	}

	b.mu.Lock()
	b.stats = Stats{Objects: len(index.Objects)}
	b.mu.Unlock()

	if !index.Virtual && !index.MapToResources {
		progress(1)
		return b.layout.AssetsDir(), nil
	}

	root := b.layout.VirtualDir(indexName)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrVirtualizationFailed, err)
	}

	existing, err := scan(ctx, root)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrVirtualizationFailed, err)
	}

	names := make([]string, 0, len(index.Objects))
	for name := range index.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	total := len(names)
	if total == 0 {
		progress(1)
		return root, nil
	}

	var (
		progressMu sync.Mutex
		done       int
	)
	report := func() {
		progressMu.Lock()
		done++
		progress(float64(done) / float64(total))
		progressMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, name := range names {
		obj := index.Objects[name]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b.place(root, name, obj, existing); err != nil {
				return err
			}
			report()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrVirtualizationFailed, err)
	}

	return root, nil
}

func (b *TreeBuilder) place(root, name string, obj manifest.AssetObject, existing map[string]int64) error {
	target := filepath.Join(root, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(root)+string(os.PathSeparator)) {
		return fmt.Errorf("asset name %q escapes the virtual tree", name)
	}

	if size, ok := existing[target]; ok && size == obj.Size {
		b.count(func(s *Stats) { s.Reused++ })
		return nil
	}

	src := b.layout.ObjectPath(obj.Hash)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("object %s for %s: %w", obj.Hash, name, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	linked, err := place(src, target)
	if err != nil {
		return fmt.Errorf("place %s: %w", name, err)
	}
	if linked {
		b.count(func(s *Stats) { s.Linked++ })
	} else {
		b.count(func(s *Stats) { s.Copied++ })
	}
	return nil
}

// place stages src next to target and renames it over target. An existing
// target is only ever unlinked, never written through, since it may share
// an inode with the object store.
func place(src, target string) (linked bool, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return false, err
	}
	staged := tmp.Name()
	tmp.Close()
	defer os.Remove(staged)

	if err := os.Remove(staged); err != nil {
		return false, err
	}
	if err := os.Link(src, staged); err == nil {
		linked = true
	} else if err := copyFile(src, staged); err != nil {
		return false, err
	}

	return linked, os.Rename(staged, target)
}

func (b *TreeBuilder) count(fn func(*Stats)) {
	b.mu.Lock()
	fn(&b.stats)
	b.mu.Unlock()
}

// scan records the size of every file already present in the tree
func scan(ctx context.Context, root string) (map[string]int64, error) {
	var mu sync.Mutex
	found := make(map[string]int64)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		mu.Lock()
		found[p] = info.Size()
		mu.Unlock()
		return nil
	})
	return found, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
