// Package launch runs one launch attempt of an installed instance.
//
// A Runner walks a fixed sequence of states:
//
//	NotStarted → ValidatingInstall → LoadingManifest → LoadingAssetIndex →
//	VirtualizingAssets → ResolvingLibraries → AssemblingArguments →
//	InvokingExtensionHook → Spawning → Succeeded | Failed
//
// Progress is published through an atomically replaced snapshot that any
// goroutine may poll. The context is checked at every state boundary; a
// cancelled attempt fails with KindInterrupted and leaves the instance
// untouched. Failures that mean the installation itself is broken clear
// Instance.Installed and persist it before returning.
//
// Once a process has been spawned the Runner returns its handle and plays
// no further part in its lifetime.
package launch
