// Package manifest loads runtime manifests and asset indexes.
//
// A manifest describes one runnable version: its identity, main class,
// argument template, asset index name and the ordered library set. An asset
// index maps logical asset paths to content-addressed objects.
//
// Load failures are reported through two sentinels so callers can classify
// them without inspecting messages:
//   - ErrMissing: the document does not exist
//   - ErrCorrupt: the document exists but cannot be decoded or is invalid
//
// Manifests may be JSON (decoded with sonic) or YAML (goccy/go-yaml), chosen
// by file extension. Asset indexes are always JSON.
package manifest
