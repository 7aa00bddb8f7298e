// Package control
// Author: momentics <momentics@gmail.com>
//
// Metrics, configuration and debug introspection around pools.
//
// Provides:
//   - Metrics, an api.Observer exporting pool counters to Prometheus
//   - ViolationLog, an api.ErrorHandler retaining recent rejected operations
//   - DebugProbes, named state probes for diagnostics
//   - Config, typed pool settings loaded from file and environment
//
// Pools themselves are single-goroutine; everything here is safe for
// concurrent readers.
package control
