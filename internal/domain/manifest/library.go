package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/launchpad/internal/shared/platform"
)

// Library is one dependency of a manifest
type Library struct {
	Name    string            `json:"name" yaml:"name"`
	Rules   []platform.Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`
	Natives map[string]string `json:"natives,omitempty" yaml:"natives,omitempty"`
	Extract *Extract          `json:"extract,omitempty" yaml:"extract,omitempty"`
}

// Extract is the native-extraction spec of a library
type Extract struct {
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Coordinate is a parsed group:artifact:version[:classifier] name
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
}

// Coordinate parses the library name
func (l Library) Coordinate() (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(l.Name), ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("library name %q is not group:artifact:version[:classifier]", l.Name)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("library name %q has an empty component", l.Name)
		}
	}
	c := Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	if len(parts) == 4 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// Key returns the normalized identity used to detect duplicates
func (l Library) Key() string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// Matches reports whether the library applies to env
func (l Library) Matches(env platform.Environment) bool {
	return platform.Matches(l.Rules, env)
}

// NativeClassifier returns the natives classifier for env, with ${arch}
// replaced by the environment's bitness.
func (l Library) NativeClassifier(env platform.Environment) (string, bool) {
	for name, classifier := range l.Natives {
		if platform.Parse(name) == env.Platform {
			return strings.ReplaceAll(classifier, "${arch}", env.Bits()), true
		}
	}
	return "", false
}

// Path returns the artifact path relative to the dependency store root
func (l Library) Path(env platform.Environment) (string, error) {
	c, err := l.Coordinate()
	if err != nil {
		return "", err
	}

	classifier := c.Classifier
	if native, ok := l.NativeClassifier(env); ok {
		classifier = native
	}

	file := c.Artifact + "-" + c.Version
	if classifier != "" {
		file += "-" + classifier
	}
	file += ".jar"

	group := filepath.FromSlash(strings.ReplaceAll(c.Group, ".", "/"))
	return filepath.Join(group, c.Artifact, c.Version, file), nil
}
