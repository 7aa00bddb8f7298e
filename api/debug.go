// Package api
// Author: momentics
//
// Live introspection contract for pools and their supporting components.

package api

// Debug exposes named probes over pool state for diagnostics.
type Debug interface {
	// DumpState evaluates every probe and returns the results by name.
	DumpState() map[string]any

	// RegisterProbe adds or replaces a named probe.
	RegisterProbe(name string, fn func() any)

	// UnregisterProbe removes a probe; unknown names are ignored.
	UnregisterProbe(name string)
}
