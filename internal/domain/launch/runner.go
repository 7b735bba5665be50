package launch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/launchpad/internal/domain/arguments"
	"github.com/GriffinCanCode/launchpad/internal/domain/assets"
	"github.com/GriffinCanCode/launchpad/internal/domain/instance"
	"github.com/GriffinCanCode/launchpad/internal/domain/library"
	"github.com/GriffinCanCode/launchpad/internal/domain/manifest"
	"github.com/GriffinCanCode/launchpad/internal/domain/memory"
	"github.com/GriffinCanCode/launchpad/internal/domain/process"
	"github.com/GriffinCanCode/launchpad/internal/domain/session"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/logging"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/launchpad/internal/shared/id"
)

const redacted = "<redacted>"

// Runner is one launch attempt
type Runner struct {
	launcher   *Launcher
	inst       *instance.Instance
	sess       *session.Session
	opts       Options
	attemptID  id.AttemptID
	extractDir string
	progress   *tracker
	logger     *logging.Logger

	state State
	timer *monitoring.Timer
}

// AttemptID returns the id naming this attempt and its extraction directory
func (r *Runner) AttemptID() string {
	return r.attemptID.String()
}

// ExtractDir returns the attempt-scoped native extraction directory
func (r *Runner) ExtractDir() string {
	return r.extractDir
}

// Progress returns the latest progress snapshot without blocking
func (r *Runner) Progress() Progress {
	return r.progress.load()
}

// Run executes the attempt and returns the spawned process. It may be
// called once.
func (r *Runner) Run(ctx context.Context) (*process.Handle, error) {
	r.launcher.metrics.LaunchStarted()

	handle, err := r.run(ctx)
	r.stopTimer()

	if err != nil {
		r.progress.fail(err)
		kind := KindOf(err)
		outcome := monitoring.OutcomeFailed
		if kind == KindInterrupted {
			outcome = monitoring.OutcomeInterrupted
		}
		r.launcher.metrics.LaunchFinished(outcome, string(kind))
		return nil, err
	}

	r.progress.enter(StateSucceeded)
	r.launcher.metrics.LaunchFinished(monitoring.OutcomeSuccess, "")
	r.logger.Info("Launched", zap.Int("pid", handle.PID()))
	return handle, nil
}

func (r *Runner) run(ctx context.Context) (*process.Handle, error) {
	l := r.launcher

	if err := r.enter(ctx, StateValidatingInstall); err != nil {
		return nil, err
	}
	if r.sess == nil {
		return nil, r.failure(KindLaunchFailed, "", "no session", nil)
	}
	if err := r.sess.Validate(); err != nil {
		return nil, r.failure(KindLaunchFailed, "", err.Error(), err)
	}
	if !r.inst.Installed {
		return nil, r.failure(KindInstallationRequired, "", "instance is not installed", nil)
	}

	if err := r.enter(ctx, StateLoadingManifest); err != nil {
		return nil, err
	}
	versionPath := r.inst.VersionPath()
	m, err := manifest.Load(versionPath)
	if err != nil {
		kind := KindManifestCorrupt
		if errors.Is(err, manifest.ErrMissing) {
			kind = KindManifestMissing
		}
		return nil, r.integrityFailure(ctx, kind, versionPath, err)
	}

	if err := r.enter(ctx, StateLoadingAssetIndex); err != nil {
		return nil, err
	}
	indexPath := l.layout.IndexPath(m.AssetIndexName())
	index, err := manifest.LoadAssetIndex(indexPath)
	if err != nil {
		kind := KindAssetsIndexCorrupt
		if errors.Is(err, manifest.ErrMissing) {
			kind = KindAssetsIndexMissing
		}
		return nil, r.integrityFailure(ctx, kind, indexPath, err)
	}

	if err := r.enter(ctx, StateVirtualizingAssets); err != nil {
		return nil, err
	}
	virtualDir, err := l.virtualizer.Virtualize(ctx, m.AssetIndexName(), index, func(frac float64) {
		r.progress.within(StateVirtualizingAssets, frac)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, r.interrupted(ctx.Err())
		}
		return nil, r.failure(KindAssetVirtualizationFailed, "", err.Error(), err)
	}
	if tb, ok := l.virtualizer.(*assets.TreeBuilder); ok {
		stats := tb.Stats()
		l.metrics.AssetsMaterialized(stats.Linked + stats.Copied)
	}

	if err := r.enter(ctx, StateResolvingLibraries); err != nil {
		return nil, err
	}
	spec := process.NewSpec()
	resolver := library.NewResolver(l.layout, l.env, l.extractor)
	resolved, err := resolver.Resolve(ctx, m.Libraries, r.extractDir, spec)
	if err != nil {
		return nil, r.libraryFailure(ctx, versionPath, err)
	}
	l.metrics.FilesExtracted(resolved.Files)
	r.logger.Debug("Resolved libraries",
		zap.Int("classpath", len(resolved.Classpath)),
		zap.Int("natives", len(resolved.Natives)),
		zap.Int("skipped", len(resolved.Skipped)),
	)

	if err := r.enter(ctx, StateAssemblingArguments); err != nil {
		return nil, err
	}
	tuned := memory.Tune(memory.Settings{
		MinMemory: r.opts.MinMemory,
		MaxMemory: r.opts.MaxMemory,
		PermGen:   r.opts.PermGen,
	}, l.policy, l.probe(ctx))
	spec.MinMemory = tuned.MinMemory
	spec.MaxMemory = tuned.MaxMemory
	spec.PermGen = tuned.PermGen

	if r.opts.JVMPath != "" && !spec.TryJVMPath(r.opts.JVMPath) {
		r.logger.Warn("Ignoring unusable Java path", zap.String("path", r.opts.JVMPath))
	}

	err = arguments.Assemble(spec, arguments.Input{
		Manifest:   m,
		Index:      index,
		Instance:   r.inst,
		Session:    r.sess,
		Layout:     l.layout,
		Env:        l.env,
		VirtualDir: virtualDir,
		Window:     r.opts.Window,
		UserFlags:  r.opts.JVMArgs,
	})
	if err != nil {
		return nil, r.failure(KindLaunchFailed, "", err.Error(), err)
	}

	if err := r.enter(ctx, StateInvokingExtensionHook); err != nil {
		return nil, err
	}
	if r.opts.Modifier != nil {
		if err := r.opts.Modifier.Modify(spec); err != nil {
			return nil, r.failure(KindLaunchFailed, "", fmt.Sprintf("launch modifier: %v", err), err)
		}
	}

	if err := r.enter(ctx, StateSpawning); err != nil {
		return nil, err
	}
	r.logger.Info("Launching", zap.String("command", r.redact(spec.Command())))

	handle, err := l.start(spec, process.StartOptions{
		Dir:    r.inst.ContentDir(),
		Stdout: r.opts.Stdout,
		Stderr: r.opts.Stderr,
	})
	if err != nil {
		return nil, r.failure(KindLaunchFailed, spec.JVMPath, err.Error(), err)
	}

	return handle, nil
}

// enter checks for cancellation at the state boundary, then moves to state
func (r *Runner) enter(ctx context.Context, state State) error {
	if err := ctx.Err(); err != nil {
		return r.interrupted(err)
	}

	r.stopTimer()
	r.state = state
	r.timer = monitoring.NewTimer(r.launcher.metrics, state.String())
	r.progress.enter(state)
	r.logger.Debug("Launch state", zap.Stringer("state", state))
	return nil
}

func (r *Runner) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Runner) interrupted(err error) *Error {
	return r.failure(KindInterrupted, "", "cancelled during "+r.state.String(), err)
}

func (r *Runner) failure(kind Kind, subject, diagnostic string, err error) *Error {
	return &Error{
		Kind:       kind,
		Instance:   r.inst.Title,
		Subject:    subject,
		Diagnostic: diagnostic,
		Err:        err,
	}
}

// integrityFailure marks the instance as needing repair and persists it
func (r *Runner) integrityFailure(ctx context.Context, kind Kind, subject string, err error) *Error {
	le := r.failure(kind, subject, err.Error(), err)

	r.inst.Installed = false
	if store := r.launcher.store; store != nil {
		// the commit must land even if the attempt was cancelled meanwhile
		if cerr := store.Commit(context.WithoutCancel(ctx), r.inst); cerr != nil {
			r.logger.Error("Failed to persist instance state", zap.Error(cerr))
		}
	}

	r.logger.Warn("Installation integrity failure",
		zap.String("kind", string(kind)),
		zap.String("diagnostic", le.Diagnostic),
	)
	return le
}

func (r *Runner) libraryFailure(ctx context.Context, versionPath string, err error) *Error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return r.interrupted(err)
	}

	var missing *library.MissingLibraryError
	if errors.As(err, &missing) {
		return r.integrityFailure(ctx, KindMissingLibrary, missing.Name, err)
	}

	var extraction *library.ExtractionError
	if errors.As(err, &extraction) {
		return r.integrityFailure(ctx, KindMissingLibrary, extraction.Name, err)
	}

	return r.integrityFailure(ctx, KindManifestCorrupt, versionPath, err)
}

// redact hides session secrets in a rendered command
func (r *Runner) redact(argv []string) string {
	line := strings.Join(argv, " ")
	if r.sess == nil {
		return line
	}
	secrets := []string{r.sess.SessionToken(), r.sess.AccessToken}
	for _, secret := range secrets {
		if len(secret) < 2 {
			continue
		}
		line = strings.ReplaceAll(line, secret, redacted)
	}
	return line
}

func attemptField(attempt id.AttemptID) zap.Field {
	return zap.String("attempt", attempt.String())
}

func instanceField(inst *instance.Instance) zap.Field {
	if inst == nil {
		return zap.Skip()
	}
	return zap.String("instance", inst.Title)
}
