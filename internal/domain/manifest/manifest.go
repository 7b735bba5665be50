package manifest

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
)

// Manifest is a versioned runtime manifest
type Manifest struct {
	ID                 string    `json:"id" yaml:"id"`
	MainClass          string    `json:"mainClass" yaml:"mainClass"`
	MinecraftArguments string    `json:"minecraftArguments" yaml:"minecraftArguments"`
	Assets             string    `json:"assets,omitempty" yaml:"assets,omitempty"`
	Libraries          []Library `json:"libraries" yaml:"libraries"`
}

// AssetIndexName returns the asset index this manifest uses. Old manifests
// without one use the "legacy" index.
func (m *Manifest) AssetIndexName() string {
	if m.Assets == "" {
		return "legacy"
	}
	return m.Assets
}

// ArgumentTemplate returns the whitespace-delimited argument template tokens
func (m *Manifest) ArgumentTemplate() []string {
	return strings.Fields(m.MinecraftArguments)
}

// Validate checks the fields every launch depends on
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	if err := paths.ValidateName(m.ID); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if err := paths.ValidateName(m.AssetIndexName()); err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	if m.MainClass == "" {
		return fmt.Errorf("mainClass is required")
	}
	for i, lib := range m.Libraries {
		if _, err := lib.Coordinate(); err != nil {
			return fmt.Errorf("libraries[%d]: %w", i, err)
		}
	}
	return nil
}
