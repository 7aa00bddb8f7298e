package control_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/control"
	"github.com/momentics/hioload-pool/fake"
	"github.com/momentics/hioload-pool/pool"
)

func TestMetrics_TracksPoolEvents(t *testing.T) {
	m := control.NewMetrics("test")
	p := pool.New[*fake.Item](&fake.Constructor{}, pool.WithName("items"), pool.WithObserver(m))

	a, err := p.Allocate()
	require.NoError(t, err)
	_, err = p.Allocate()
	require.NoError(t, err)
	require.NoError(t, p.Release(a))
	recycled, err := p.Allocate()
	require.NoError(t, err)
	require.Same(t, a, recycled)
	require.NoError(t, p.Release(a))
	require.Error(t, p.Release(a))
	require.NoError(t, p.ForEach(func(*fake.Item, int) { _ = p.Clean() }))
	require.NoError(t, p.Clean())

	expected := `
# HELP test_pool_allocated_items Live items currently allocated.
# TYPE test_pool_allocated_items gauge
test_pool_allocated_items{pool="items"} 1
# HELP test_pool_released_items Released items retained for reuse.
# TYPE test_pool_released_items gauge
test_pool_released_items{pool="items"} 0
# HELP test_pool_allocations_total Allocations by construction mode.
# TYPE test_pool_allocations_total counter
test_pool_allocations_total{mode="fresh",pool="items"} 2
test_pool_allocations_total{mode="recycled",pool="items"} 1
# HELP test_pool_releases_total Items returned to the pool.
# TYPE test_pool_releases_total counter
test_pool_releases_total{pool="items"} 2
# HELP test_pool_cleans_total Clean operations.
# TYPE test_pool_cleans_total counter
test_pool_cleans_total{pool="items"} 1
# HELP test_pool_discarded_items_total Released items dropped by clean.
# TYPE test_pool_discarded_items_total counter
test_pool_discarded_items_total{pool="items"} 1
# HELP test_pool_rejections_total Rejected operations by error code.
# TYPE test_pool_rejections_total counter
test_pool_rejections_total{code="locked",pool="items"} 1
test_pool_rejections_total{code="not_allocated",pool="items"} 1
`
	require.NoError(t, testutil.CollectAndCompare(m, strings.NewReader(expected)))
}

func TestMetrics_RegistersAndSeparatesPools(t *testing.T) {
	m := control.NewMetrics("hioload")
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m))

	a := pool.New[*fake.Item](&fake.Constructor{}, pool.WithName("a"), pool.WithObserver(m))
	b := pool.New[*fake.Item](&fake.Constructor{}, pool.WithName("b"), pool.WithObserver(m))
	for i := 0; i < 3; i++ {
		_, err := a.Allocate()
		require.NoError(t, err)
	}
	item, err := b.Allocate()
	require.NoError(t, err)
	require.NoError(t, b.Release(item))

	assert.Equal(t, map[string]api.Info{
		"a": {Allocated: 3},
		"b": {Released: 1},
	}, m.Snapshot())

	// two pools, nine series each
	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 18, count)
}

func TestMetrics_ConcurrentScrape(t *testing.T) {
	m := control.NewMetrics("hioload")
	p := pool.New[*fake.Item](&fake.Constructor{}, pool.WithName("hot"), pool.WithObserver(m))

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				_ = testutil.CollectAndCount(m)
				_ = m.Snapshot()
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		item, err := p.Allocate(i)
		require.NoError(t, err)
		if i%2 == 0 {
			require.NoError(t, p.Release(item))
		}
	}
	close(done)
	wg.Wait()

	assert.Equal(t, api.Info{Allocated: 500, Released: 0}, m.Snapshot()["hot"])
}
