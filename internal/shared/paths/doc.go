// Package paths provides the standardized launcher directory layout.
//
// All launch components resolve on-disk locations through a Layout so the
// shared stores stay consistent between the installer and the launcher.
//
// # Directory Structure
//
//	<base>/
//	  ├── libraries/          (shared dependency store, maven layout)
//	  ├── versions/<id>/      (default main artifact <id>.jar per manifest)
//	  ├── assets/
//	  │   ├── indexes/        (asset index documents <name>.json)
//	  │   ├── objects/        (content-addressed store objects/<hh>/<hash>)
//	  │   └── virtual/<name>/ (materialized virtual asset directories)
//	  ├── instances/<title>/  (per-instance directories)
//	  ├── temp/natives/<id>/  (attempt-scoped extraction directories)
//	  └── launcher.db         (instance store)
//
// # Usage
//
//	layout := paths.New("/home/me/.launcher")
//	libs := layout.LibrariesDir()
//	jar := layout.VersionJar("1.7.10")
package paths
