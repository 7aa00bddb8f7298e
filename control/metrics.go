// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collector fed by pool events.
// Counters are atomics so scrapes never touch pool internals.

package control

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-pool/api"
)

// poolCounters is written on the pool goroutine and read by scrapes.
// The gauges change on every event and sit on their own line, apart from the
// counters and from neighbouring pools.
type poolCounters struct {
	_            cpu.CacheLinePad
	allocated    atomic.Int64
	released     atomic.Int64
	_            cpu.CacheLinePad
	fresh        atomic.Uint64
	recycled     atomic.Uint64
	releases     atomic.Uint64
	cleans       atomic.Uint64
	discarded    atomic.Uint64
	locked       atomic.Uint64
	notAllocated atomic.Uint64
	_            cpu.CacheLinePad
}

// Metrics observes any number of pools, keyed by pool name, and exports
// their counters as Prometheus metrics.
type Metrics struct {
	mu    sync.RWMutex
	pools map[string]*poolCounters

	allocatedDesc   *prometheus.Desc
	releasedDesc    *prometheus.Desc
	allocationsDesc *prometheus.Desc
	releasesDesc    *prometheus.Desc
	cleansDesc      *prometheus.Desc
	discardedDesc   *prometheus.Desc
	rejectionsDesc  *prometheus.Desc
}

// NewMetrics creates a collector under the given namespace.
func NewMetrics(namespace string) *Metrics {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pool", name),
			help,
			append([]string{"pool"}, labels...),
			nil,
		)
	}
	return &Metrics{
		pools:           make(map[string]*poolCounters),
		allocatedDesc:   desc("allocated_items", "Live items currently allocated."),
		releasedDesc:    desc("released_items", "Released items retained for reuse."),
		allocationsDesc: desc("allocations_total", "Allocations by construction mode.", "mode"),
		releasesDesc:    desc("releases_total", "Items returned to the pool."),
		cleansDesc:      desc("cleans_total", "Clean operations."),
		discardedDesc:   desc("discarded_items_total", "Released items dropped by clean."),
		rejectionsDesc:  desc("rejections_total", "Rejected operations by error code.", "code"),
	}
}

func (m *Metrics) counters(name string) *poolCounters {
	m.mu.RLock()
	c, ok := m.pools[name]
	m.mu.RUnlock()
	if ok {
		return c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.pools[name]; !ok {
		c = &poolCounters{}
		m.pools[name] = c
	}
	return c
}

// Observe implements api.Observer.
func (m *Metrics) Observe(ev api.Event) {
	c := m.counters(ev.Pool)
	c.allocated.Store(int64(ev.Info.Allocated))
	c.released.Store(int64(ev.Info.Released))

	if ev.Err != nil {
		var perr *api.Error
		if errors.As(ev.Err, &perr) {
			switch perr.Code {
			case api.ErrCodeLocked:
				c.locked.Add(1)
			case api.ErrCodeNotAllocated:
				c.notAllocated.Add(1)
			}
		}
		return
	}

	switch ev.Op {
	case api.OpAllocate:
		if ev.Fresh {
			c.fresh.Add(1)
		} else {
			c.recycled.Add(1)
		}
	case api.OpRelease:
		c.releases.Add(1)
	case api.OpClean:
		c.cleans.Add(1)
		c.discarded.Add(uint64(ev.Discarded))
	}
}

// Snapshot returns the last observed partition of every pool.
// Unlike Pool.Info it is safe to call from any goroutine.
func (m *Metrics) Snapshot() map[string]api.Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]api.Info, len(m.pools))
	for name, c := range m.pools {
		out[name] = api.Info{
			Allocated: int(c.allocated.Load()),
			Released:  int(c.released.Load()),
		}
	}
	return out
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.allocatedDesc
	ch <- m.releasedDesc
	ch <- m.allocationsDesc
	ch <- m.releasesDesc
	ch <- m.cleansDesc
	ch <- m.discardedDesc
	ch <- m.rejectionsDesc
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for name, c := range m.pools {
		gauge := func(d *prometheus.Desc, v int64, labels ...string) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), append([]string{name}, labels...)...)
		}
		counter := func(d *prometheus.Desc, v uint64, labels ...string) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), append([]string{name}, labels...)...)
		}
		gauge(m.allocatedDesc, c.allocated.Load())
		gauge(m.releasedDesc, c.released.Load())
		counter(m.allocationsDesc, c.fresh.Load(), "fresh")
		counter(m.allocationsDesc, c.recycled.Load(), "recycled")
		counter(m.releasesDesc, c.releases.Load())
		counter(m.cleansDesc, c.cleans.Load())
		counter(m.discardedDesc, c.discarded.Load())
		counter(m.rejectionsDesc, c.locked.Load(), api.ErrCodeLocked.String())
		counter(m.rejectionsDesc, c.notAllocated.Load(), api.ErrCodeNotAllocated.String())
	}
}

var (
	_ api.Observer         = (*Metrics)(nil)
	_ prometheus.Collector = (*Metrics)(nil)
)
