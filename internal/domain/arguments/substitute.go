// Package arguments assembles the flags, classpath tail and application
// arguments of a launch.
package arguments

import (
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Substitute replaces every ${key} in token with values[key]. Unknown keys
// are left as-is.
func Substitute(token string, values map[string]string) string {
	if !strings.Contains(token, "${") {
		return token
	}
	return placeholder.ReplaceAllStringFunc(token, func(m string) string {
		key := m[2 : len(m)-1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}

// Expand substitutes every token of a split template
func Expand(template []string, values map[string]string) []string {
	out := make([]string, len(template))
	for i, token := range template {
		out[i] = Substitute(token, values)
	}
	return out
}
