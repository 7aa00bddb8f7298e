// File: internal/sim/emitter.go
// Author: momentics <momentics@gmail.com>

package sim

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

// Emitter spawns particles each tick and recycles expired ones.
type Emitter struct {
	particles api.ObjectPool[*Particle]
	rng       *rand.Rand
	maxTTL    int
	log       *zap.Logger

	// expired collects particles seen dead during a pass; they are released
	// once ForEach has returned and the pool is unlocked.
	expired []*Particle
	tick    int
}

// NewEmitter creates an emitter whose particles live 1..maxTTL ticks.
func NewEmitter(seed int64, maxTTL int, logger *zap.Logger, opts ...pool.Option) *Emitter {
	return NewEmitterOn(pool.New[*Particle](pool.Init(NewParticle), opts...), seed, maxTTL, logger)
}

// NewEmitterOn creates an emitter over an existing particle pool.
func NewEmitterOn(particles api.ObjectPool[*Particle], seed int64, maxTTL int, logger *zap.Logger) *Emitter {
	if maxTTL < 1 {
		maxTTL = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		particles: particles,
		rng:       rand.New(rand.NewSource(seed)),
		maxTTL:    maxTTL,
		log:       logger,
	}
}

// Pool exposes the underlying pool, e.g. for debug probes.
func (e *Emitter) Pool() api.ObjectPool[*Particle] {
	return e.particles
}

// Info reports the pool partition.
func (e *Emitter) Info() api.Info {
	return e.particles.Info()
}

// Spawn allocates n particles at the origin with random velocity.
func (e *Emitter) Spawn(n int) error {
	for i := 0; i < n; i++ {
		_, err := e.particles.Allocate(0.0, 0.0,
			e.rng.Float64()*2-1, e.rng.Float64()*2-1,
			1+e.rng.Intn(e.maxTTL))
		if err != nil {
			return errors.Wrapf(err, "spawn %d/%d", i+1, n)
		}
	}
	return nil
}

// Step advances every live particle by one tick and releases those that
// expired. It returns the number released.
func (e *Emitter) Step() (int, error) {
	e.tick++
	err := e.particles.ForEach(func(p *Particle, _ int) {
		p.X += p.VX
		p.Y += p.VY
		p.Age++
		if !p.Alive() {
			e.expired = append(e.expired, p)
		}
	})
	if err != nil {
		return 0, errors.Wrap(err, "step")
	}

	defer func() {
		clear(e.expired)
		e.expired = e.expired[:0]
	}()
	for i, p := range e.expired {
		if err := e.particles.Release(p); err != nil {
			return i, errors.Wrap(err, "release expired")
		}
	}
	return len(e.expired), nil
}

// Run spawns and steps for the given number of ticks, calling onTick after
// each one. It stops early when ctx is done.
func (e *Emitter) Run(ctx context.Context, ticks, spawn int, onTick func(tick int, info api.Info)) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Spawn(spawn); err != nil {
			return err
		}
		released, err := e.Step()
		if err != nil {
			return err
		}
		info := e.Info()
		e.log.Debug("tick",
			zap.Int("tick", e.tick),
			zap.Int("released", released),
			zap.Int("allocated", info.Allocated),
			zap.Int("retained", info.Released),
		)
		if onTick != nil {
			onTick(e.tick, info)
		}
	}
	return nil
}
