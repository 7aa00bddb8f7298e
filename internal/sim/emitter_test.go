package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/control"
	"github.com/momentics/hioload-pool/pool"
)

func TestParticle_InitResetsState(t *testing.T) {
	p := &Particle{Age: 7, TTL: 3}
	p.SetPoolIndex(4)

	p.Init(1.5, -2.0, 0.5, 0.25, 9)

	assert.Equal(t, 1.5, p.X)
	assert.Equal(t, -2.0, p.Y)
	assert.Equal(t, 0.5, p.VX)
	assert.Equal(t, 0.25, p.VY)
	assert.Equal(t, 9, p.TTL)
	assert.Zero(t, p.Age)
	assert.Equal(t, 4, p.PoolIndex(), "pool index survives reinit")

	p.Init(float32(1), 2)
	assert.Equal(t, 1.0, p.X)
	assert.Equal(t, 2.0, p.Y)
	assert.Zero(t, p.TTL)
}

func TestEmitter_StepReleasesExpired(t *testing.T) {
	e := NewEmitter(1, 1, nil)
	require.NoError(t, e.Spawn(10))

	released, err := e.Step()
	require.NoError(t, err)

	assert.Equal(t, 10, released, "ttl of one tick expires everything")
	assert.Equal(t, api.Info{Allocated: 0, Released: 10}, e.Info())

	require.NoError(t, e.Spawn(4))
	assert.Equal(t, api.Info{Allocated: 4, Released: 6}, e.Info())
}

func TestEmitter_RunReachesSteadyState(t *testing.T) {
	m := control.NewMetrics("sim")
	e := NewEmitter(7, 5, nil, pool.WithName("particles"), pool.WithObserver(m))

	var last api.Info
	ticks := 0
	require.NoError(t, e.Run(context.Background(), 200, 20, func(tick int, info api.Info) {
		ticks = tick
		last = info
		assert.LessOrEqual(t, info.Allocated, 20*5)
	}))

	assert.Equal(t, 200, ticks)
	assert.Equal(t, last, m.Snapshot()["particles"])
	assert.LessOrEqual(t, last.Total(), 20*5+20, "recycling bounds the store")

	require.NoError(t, e.Pool().ForEach(func(p *Particle, i int) {
		assert.Equal(t, i, p.PoolIndex())
		assert.True(t, p.Alive())
	}))
}

func TestEmitter_RunHonoursContext(t *testing.T) {
	e := NewEmitter(1, 3, nil)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := e.Run(ctx, 100, 1, func(int, api.Info) {
		calls++
		if calls == 3 {
			cancel()
		}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, calls)
}

func TestEmitter_StepRecoversAfterFailedRelease(t *testing.T) {
	e := NewEmitter(1, 1, nil)
	require.NoError(t, e.Spawn(3))
	e.expired = append(e.expired, &Particle{})

	released, err := e.Step()
	require.ErrorIs(t, err, api.ErrNotAllocated)
	assert.Zero(t, released)
	assert.Empty(t, e.expired)
	assert.Equal(t, api.Info{Allocated: 3}, e.Info())

	released, err = e.Step()
	require.NoError(t, err)
	assert.Equal(t, 3, released)
	assert.Equal(t, api.Info{Released: 3}, e.Info())
}

func TestEmitter_RunsOnTrackedPool(t *testing.T) {
	particles := pool.NewTracked[*Particle](pool.Init(NewParticle), pool.WithName("tracked"))
	e := NewEmitterOn(particles, 3, 4, nil)

	require.NoError(t, e.Run(context.Background(), 50, 10, nil))

	assert.Equal(t, particles.Info(), e.Info())
	assert.LessOrEqual(t, e.Info().Allocated, 10*4)
	require.NoError(t, particles.ForEach(func(p *Particle, _ int) {
		assert.True(t, p.Alive())
		assert.True(t, particles.IsAllocated(p))
	}))
}
