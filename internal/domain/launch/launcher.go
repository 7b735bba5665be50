package launch

import (
	"io"

	"github.com/GriffinCanCode/launchpad/internal/domain/arguments"
	"github.com/GriffinCanCode/launchpad/internal/domain/assets"
	"github.com/GriffinCanCode/launchpad/internal/domain/instance"
	"github.com/GriffinCanCode/launchpad/internal/domain/library"
	"github.com/GriffinCanCode/launchpad/internal/domain/memory"
	"github.com/GriffinCanCode/launchpad/internal/domain/process"
	"github.com/GriffinCanCode/launchpad/internal/domain/session"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/logging"
	"github.com/GriffinCanCode/launchpad/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/launchpad/internal/shared/id"
	"github.com/GriffinCanCode/launchpad/internal/shared/paths"
	"github.com/GriffinCanCode/launchpad/internal/shared/platform"
)

// StartFunc spawns a rendered command
type StartFunc func(spec *process.Spec, opts process.StartOptions) (*process.Handle, error)

// Config wires a Launcher. Zero fields get working defaults.
type Config struct {
	Layout      paths.Layout
	Store       instance.Store
	Virtualizer assets.Virtualizer
	Extractor   library.Extractor
	Env         platform.Environment
	Probe       memory.Probe
	Policy      memory.Policy
	Start       StartFunc
	Logger      *logging.Logger
	Metrics     *monitoring.Metrics
}

// Launcher creates launch attempts sharing one store layout
type Launcher struct {
	layout      paths.Layout
	store       instance.Store
	virtualizer assets.Virtualizer
	extractor   library.Extractor
	env         platform.Environment
	probe       memory.Probe
	policy      memory.Policy
	start       StartFunc
	logger      *logging.Logger
	metrics     *monitoring.Metrics
}

// New creates a Launcher
func New(cfg Config) *Launcher {
	l := &Launcher{
		layout:      cfg.Layout,
		store:       cfg.Store,
		virtualizer: cfg.Virtualizer,
		extractor:   cfg.Extractor,
		env:         cfg.Env,
		probe:       cfg.Probe,
		policy:      cfg.Policy,
		start:       cfg.Start,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}

	if l.virtualizer == nil {
		l.virtualizer = assets.NewTreeBuilder(l.layout, 0)
	}
	if l.env.Platform == "" {
		l.env = platform.Current()
	}
	if l.probe == nil {
		l.probe = memory.HostProbe
	}
	if l.policy == nil {
		l.policy = memory.Identity{}
	}
	if l.start == nil {
		l.start = process.Start
	}
	if l.logger == nil {
		l.logger = logging.NewNop()
	}

	return l
}

// Layout returns the store layout
func (l *Launcher) Layout() paths.Layout {
	return l.layout
}

// Options are the per-attempt settings taken from configuration
type Options struct {
	MinMemory int
	MaxMemory int
	PermGen   int
	JVMPath   string
	JVMArgs   string
	Window    arguments.Window

	// Modifier is the instance's pre-spawn hook; nil skips the hook
	Modifier Modifier

	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner prepares one launch attempt. The attempt does not start until
// Run is called.
func (l *Launcher) NewRunner(inst *instance.Instance, sess *session.Session, opts Options) *Runner {
	attempt := id.NewAttemptID()
	return &Runner{
		launcher:   l,
		inst:       inst,
		sess:       sess,
		opts:       opts,
		attemptID:  attempt,
		extractDir: l.layout.ExtractDir(attempt.String()),
		progress:   newTracker(),
		logger:     l.logger.With(attemptField(attempt), instanceField(inst)),
	}
}
