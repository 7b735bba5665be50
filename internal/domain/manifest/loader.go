package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
)

var (
	ErrMissing = errors.New("document missing")
	ErrCorrupt = errors.New("document corrupt")
)

// Load reads and validates a runtime manifest
func Load(path string) (*Manifest, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = sonic.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	return &m, nil
}

// LoadAssetIndex reads an asset index document
func LoadAssetIndex(path string) (*AssetIndex, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var idx AssetIndex
	if err := sonic.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if idx.Objects == nil {
		idx.Objects = map[string]AssetObject{}
	}

	return &idx, nil
}

func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		// Unreadable files are treated like unparsable ones
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return data, nil
}
