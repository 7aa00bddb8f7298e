// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import (
	"runtime"
	"sync"

	"github.com/momentics/hioload-pool/api"
)

// DebugProbes holds registered probe functions.
// Probes run on the goroutine calling DumpState; probes reading a Pool
// directly must only be dumped from that pool's goroutine.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// UnregisterProbe drops a named debug hook.
func (dp *DebugProbes) UnregisterProbe(name string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	delete(dp.probes, name)
}

// RegisterPool exposes a pool partition under "pool.<name>".
func (dp *DebugProbes) RegisterPool(name string, info func() api.Info) {
	dp.RegisterProbe("pool."+name, func() any { return info() })
}

// RegisterViolations exposes the recent rejected operations under
// "violations.<name>" as their messages, oldest first.
func (dp *DebugProbes) RegisterViolations(name string, log *ViolationLog) {
	dp.RegisterProbe("violations."+name, func() any {
		recent := log.Recent()
		out := make([]string, len(recent))
		for i, err := range recent {
			out[i] = err.Error()
		}
		return out
	})
}

// RegisterRuntimeProbes adds Go runtime figures relevant to allocation churn.
func (dp *DebugProbes) RegisterRuntimeProbes() {
	dp.RegisterProbe("runtime.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("runtime.heap_objects", func() any {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return ms.HeapObjects
	})
	dp.RegisterProbe("runtime.gc_cycles", func() any {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return ms.NumGC
	})
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

var _ api.Debug = (*DebugProbes)(nil)
