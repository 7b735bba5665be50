package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/GriffinCanCode/launchpad/internal/shared/id"
)

// PruneExtractionDirs removes attempt directories under root whose attempt
// id was generated before olderThan. Entries that are not attempt ids are
// left alone. Callers must not prune directories a running game still uses.
func PruneExtractionDirs(root string, olderThan time.Time) (int, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", root, err)
	}

	removed := 0
	var errs []error
	for _, entry := range entries {
		if !entry.IsDir() || !id.IsAttemptID(entry.Name()) {
			continue
		}
		created, err := id.Timestamp(entry.Name())
		if err != nil || !created.Before(olderThan) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
