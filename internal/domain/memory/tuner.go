// Package memory computes heap and permanent-generation sizing for a launch.
//
// Tuning is a best-effort heuristic: it never guarantees the host can
// satisfy the resulting allocation.
package memory

const (
	DefaultHeapMB    = 1024
	DefaultPermGenMB = 128
	MinPermGenMB     = 64

	// lowMemoryFloorMB is the heap minimum used when the recomputed value is
	// too small to be useful.
	lowMemoryFloorMB  = 128
	lowMemoryCutoffMB = 512
	heapGranularityMB = 256
)

// Settings is the memory portion of a process spec, in megabytes
type Settings struct {
	MinMemory int
	MaxMemory int
	PermGen   int
}

// Policy applies instance-specific advisory clamps
type Policy interface {
	ClampMin(mb int) int
	ClampMax(mb int) int
	ClampPermGen(mb int) int
}

// Identity is the pass-through Policy
type Identity struct{}

func (Identity) ClampMin(mb int) int     { return mb }
func (Identity) ClampMax(mb int) int     { return mb }
func (Identity) ClampPermGen(mb int) int { return mb }

// Ceiling caps each value at a non-zero limit
type Ceiling struct {
	MaxMemory int
	PermGen   int
}

func (c Ceiling) ClampMin(mb int) int     { return capAt(mb, c.MaxMemory) }
func (c Ceiling) ClampMax(mb int) int     { return capAt(mb, c.MaxMemory) }
func (c Ceiling) ClampPermGen(mb int) int { return capAt(mb, c.PermGen) }

func capAt(mb, limit int) int {
	if limit > 0 && mb > limit {
		return limit
	}
	return mb
}

// Reading is a live free-memory measurement
type Reading struct {
	MB int
	OK bool
}

// Unknown is the reading used when the host cannot report free memory
var Unknown = Reading{}

// Available reports whether the reading can drive the low-memory adjustment
func (r Reading) Available() bool {
	return r.OK && r.MB > 0
}

// Tune applies defaults, policy clamps and the low-memory adjustment
func Tune(in Settings, policy Policy, free Reading) Settings {
	if policy == nil {
		policy = Identity{}
	}

	out := in
	if out.MinMemory <= 0 {
		out.MinMemory = DefaultHeapMB
	}
	if out.MaxMemory <= 0 {
		out.MaxMemory = DefaultHeapMB
	}
	if out.PermGen <= 0 {
		out.PermGen = DefaultPermGenMB
	}
	if out.PermGen <= MinPermGenMB {
		out.PermGen = MinPermGenMB
	}

	out.MinMemory = policy.ClampMin(out.MinMemory)
	out.MaxMemory = policy.ClampMax(out.MaxMemory)
	out.PermGen = policy.ClampPermGen(out.PermGen)

	if free.Available() && free.MB < out.MinMemory {
		out.MinMemory = ((free.MB / 2) / heapGranularityMB) * heapGranularityMB
		if out.MinMemory <= lowMemoryCutoffMB {
			out.MinMemory = lowMemoryFloorMB
		}
	}

	if out.MinMemory > out.MaxMemory {
		out.MaxMemory = out.MinMemory
	}

	return out
}
