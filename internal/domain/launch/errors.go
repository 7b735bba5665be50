package launch

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind classifies launch failures
type Kind string

const (
	KindInstallationRequired      Kind = "installation_required"
	KindManifestMissing           Kind = "manifest_missing"
	KindManifestCorrupt           Kind = "manifest_corrupt"
	KindAssetsIndexMissing        Kind = "assets_index_missing"
	KindAssetsIndexCorrupt        Kind = "assets_index_corrupt"
	KindAssetVirtualizationFailed Kind = "asset_virtualization_failed"
	KindMissingLibrary            Kind = "missing_library"
	KindInterrupted               Kind = "interrupted"
	KindLaunchFailed              Kind = "launch_failed"
)

// IntegrityFailure reports whether the kind means the installation is
// broken and must be repaired before the next launch.
func (k Kind) IntegrityFailure() bool {
	switch k {
	case KindManifestMissing, KindManifestCorrupt,
		KindAssetsIndexMissing, KindAssetsIndexCorrupt,
		KindMissingLibrary:
		return true
	}
	return false
}

// Error is a failed launch attempt
type Error struct {
	Kind     Kind
	Instance string
	// Subject is the file or library the failure is about, if any
	Subject string
	// Diagnostic is the internal, untranslated description
	Diagnostic string
	Err        error
}

func (e *Error) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("launch %s: %s: %s", e.Instance, e.Kind, e.Diagnostic)
	}
	return fmt.Sprintf("launch %s: %s", e.Instance, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message renders the user-facing message in lang
func (e *Error) Message(lang language.Tag) string {
	p := message.NewPrinter(lang)
	switch e.Kind {
	case KindMissingLibrary, KindAssetsIndexMissing, KindAssetsIndexCorrupt,
		KindManifestMissing, KindManifestCorrupt:
		return p.Sprintf(messageKey(e.Kind), e.Instance, e.Subject)
	case KindInstallationRequired, KindAssetVirtualizationFailed, KindLaunchFailed:
		return p.Sprintf(messageKey(e.Kind), e.Instance)
	case KindInterrupted:
		return p.Sprintf("launch.interrupted")
	default:
		return e.Error()
	}
}

// IsInterrupted reports whether err is a cancelled launch attempt
func IsInterrupted(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == KindInterrupted
}

// KindOf returns the kind of a launch error, or "" for other errors
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

func messageKey(k Kind) string {
	return "launch." + string(k)
}

func init() {
	en := language.English
	set := func(k Kind, msg string) {
		_ = message.SetString(en, messageKey(k), msg)
	}

	set(KindInstallationRequired, "%s needs to be updated before it can be launched.")
	set(KindManifestMissing, "The version manifest of %s is missing (%s). Please update the instance.")
	set(KindManifestCorrupt, "The version manifest of %s is damaged (%s). Please update the instance.")
	set(KindAssetsIndexMissing, "The assets index of %s is missing (%s). Please update the instance.")
	set(KindAssetsIndexCorrupt, "The assets index of %s is damaged (%s). Please update the instance.")
	set(KindAssetVirtualizationFailed, "The game files of %s could not be prepared. Please try again.")
	set(KindMissingLibrary, "%s is missing the library %s. Please update the instance.")
	set(KindInterrupted, "The launch was cancelled.")
	set(KindLaunchFailed, "%s could not be started.")
}
