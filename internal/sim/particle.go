// Package sim
// Author: momentics <momentics@gmail.com>
//
// Particle emitter driving a recycling pool at a steady churn rate.

package sim

import (
	"fmt"

	"github.com/momentics/hioload-pool/pool"
)

// Particle is a short-lived pooled object.
type Particle struct {
	pool.Slot
	X, Y   float64
	VX, VY float64
	TTL    int
	Age    int
}

// NewParticle allocates an unset particle for pool.Init.
func NewParticle() *Particle {
	return new(Particle)
}

// Init sets position, velocity and lifetime: x, y, vx, vy float64, ttl int.
// Missing trailing arguments default to zero.
func (p *Particle) Init(args ...any) {
	*p = Particle{Slot: p.Slot}
	fields := []*float64{&p.X, &p.Y, &p.VX, &p.VY}
	for i, f := range fields {
		if i < len(args) {
			*f = toFloat(args[i])
		}
	}
	if len(args) > 4 {
		p.TTL = int(toFloat(args[4]))
	}
}

// Alive reports whether the particle has time left.
func (p *Particle) Alive() bool {
	return p.Age < p.TTL
}

func (p *Particle) String() string {
	return fmt.Sprintf("particle(%.2f,%.2f age=%d/%d)", p.X, p.Y, p.Age, p.TTL)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
