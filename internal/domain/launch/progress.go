package launch

import (
	"sync/atomic"
	"time"
)

// State is one step of a launch attempt
type State int

const (
	StateNotStarted State = iota
	StateValidatingInstall
	StateLoadingManifest
	StateLoadingAssetIndex
	StateVirtualizingAssets
	StateResolvingLibraries
	StateAssemblingArguments
	StateInvokingExtensionHook
	StateSpawning
	StateSucceeded
	StateFailed
)

var stateNames = map[State]string{
	StateNotStarted:            "not_started",
	StateValidatingInstall:     "validating_install",
	StateLoadingManifest:       "loading_manifest",
	StateLoadingAssetIndex:     "loading_asset_index",
	StateVirtualizingAssets:    "virtualizing_assets",
	StateResolvingLibraries:    "resolving_libraries",
	StateAssemblingArguments:   "assembling_arguments",
	StateInvokingExtensionHook: "invoking_extension_hook",
	StateSpawning:              "spawning",
	StateSucceeded:             "succeeded",
	StateFailed:                "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions follow
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// MarshalText renders the state name in JSON
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// stage describes the progress band and status text of a state
type stage struct {
	start  float64
	end    float64
	status string
}

var stages = map[State]stage{
	StateNotStarted:            {0, 0, "Waiting"},
	StateValidatingInstall:     {0, 0.02, "Checking installation"},
	StateLoadingManifest:       {0.05, 0.05, "Reading version manifest"},
	StateLoadingAssetIndex:     {0.1, 0.1, "Reading assets index"},
	StateVirtualizingAssets:    {0.15, 0.85, "Building asset tree"},
	StateResolvingLibraries:    {0.88, 0.88, "Collecting libraries"},
	StateAssemblingArguments:   {0.92, 0.92, "Collecting arguments"},
	StateInvokingExtensionHook: {0.95, 0.95, "Applying launch modifiers"},
	StateSpawning:              {0.98, 0.98, "Starting Java"},
	StateSucceeded:             {1, 1, "Started"},
}

// Progress is a point-in-time view of an attempt. FailedIn holds the state
// a failed attempt halted in.
type Progress struct {
	State     State     `json:"state"`
	Fraction  float64   `json:"progress"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	FailedIn  State     `json:"failed_in,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// tracker publishes Progress snapshots. Only the attempt's worker writes;
// readers never block.
type tracker struct {
	current atomic.Pointer[Progress]
}

func newTracker() *tracker {
	t := &tracker{}
	t.current.Store(&Progress{State: StateNotStarted, Status: stages[StateNotStarted].status, UpdatedAt: time.Now()})
	return t
}

func (t *tracker) load() Progress {
	return *t.current.Load()
}

// enter moves to state at the start of its band
func (t *tracker) enter(state State) {
	st := stages[state]
	t.publish(Progress{State: state, Fraction: st.start, Status: st.status})
}

// within reports progress inside the current state's band; frac is the
// state's own completed fraction.
func (t *tracker) within(state State, frac float64) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	st := stages[state]
	t.publish(Progress{State: state, Fraction: st.start + (st.end-st.start)*frac, Status: st.status})
}

func (t *tracker) fail(err error) {
	prev := t.load()
	t.publish(Progress{State: StateFailed, Fraction: prev.Fraction, Status: "Failed", Error: err.Error(), FailedIn: prev.State})
}

func (t *tracker) publish(p Progress) {
	prev := t.current.Load()
	if p.Fraction < prev.Fraction {
		p.Fraction = prev.Fraction
	}
	p.UpdatedAt = time.Now()
	t.current.Store(&p)
}
