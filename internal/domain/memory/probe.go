package memory

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"
)

// Probe returns the host's available memory
type Probe func(ctx context.Context) Reading

// HostProbe reads available physical memory from the OS. Platforms gopsutil
// cannot query yield Unknown.
func HostProbe(ctx context.Context) Reading {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil || vm == nil || vm.Available == 0 {
		return Unknown
	}
	return Reading{MB: int(vm.Available / (1024 * 1024)), OK: true}
}

// Fixed returns a Probe that always reports mb
func Fixed(mb int) Probe {
	return func(context.Context) Reading {
		return Reading{MB: mb, OK: true}
	}
}
