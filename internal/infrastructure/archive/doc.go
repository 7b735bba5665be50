// Package archive unpacks native-library archives into attempt-scoped
// directories.
//
// Entries are filtered by doublestar exclusion globs evaluated against
// the entry path inside the archive. A glob ending in "/" excludes the
// whole subtree. Entries escaping the destination are rejected.
package archive
