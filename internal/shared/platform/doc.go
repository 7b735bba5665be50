// Package platform identifies the host operating system and architecture and
// evaluates the conditional-inclusion rules attached to manifest libraries.
//
// Rule Evaluation:
//   - An empty rule list always matches
//   - Rules are evaluated in declared order
//   - The last rule whose predicate matches decides (allow or disallow)
//   - If no rule matches, the library is included
//
// Example Usage:
//
//	env := platform.Current()
//	if platform.Matches(lib.Rules, env) {
//	    // library applies to this host
//	}
package platform
