// Package assets materializes asset directories for a launch.
//
// The Virtualizer contract takes an asset index and produces a directory in
// which every logical asset name resolves to real content. TreeBuilder is
// the default implementation: it hard-links (or copies, when linking is not
// possible) content-addressed objects into a per-index virtual tree and
// reports progress as a fraction of objects placed.
//
// Indexes that are neither virtual nor mapped to resources are served from
// the assets root directly and need no materialization.
package assets
