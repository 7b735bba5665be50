package platform

import "strings"

// Action is the outcome a matching rule applies
type Action string

const (
	Allow    Action = "allow"
	Disallow Action = "disallow"
)

// Allows reports whether the action includes the library. "deny" is accepted
// as an alias of "disallow".
func (a Action) Allows() bool {
	switch strings.ToLower(string(a)) {
	case "disallow", "deny":
		return false
	default:
		return true
	}
}

// OSRule is the optional predicate of a Rule
type OSRule struct {
	Name Platform `json:"name,omitempty" yaml:"name,omitempty"`
	Arch string   `json:"arch,omitempty" yaml:"arch,omitempty"`
}

// Rule is one entry of a library's inclusion rule list
type Rule struct {
	Action Action  `json:"action" yaml:"action"`
	OS     *OSRule `json:"os,omitempty" yaml:"os,omitempty"`
}

// Applies reports whether the rule's predicate holds for env. A rule without
// a predicate applies everywhere.
func (r Rule) Applies(env Environment) bool {
	if r.OS == nil {
		return true
	}
	if r.OS.Name != "" && Parse(string(r.OS.Name)) != env.Platform {
		return false
	}
	if r.OS.Arch != "" && !strings.EqualFold(r.OS.Arch, env.Arch) {
		return false
	}
	return true
}

// Matches evaluates rules in order; the last applicable rule wins and an
// unmatched list defaults to inclusion.
func Matches(rules []Rule, env Environment) bool {
	include := true
	for _, rule := range rules {
		if rule.Applies(env) {
			include = rule.Action.Allows()
		}
	}
	return include
}
