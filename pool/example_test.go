package pool_test

import (
	"fmt"

	"github.com/momentics/hioload-pool/pool"
)

type particle struct {
	pool.Slot
	x, y float64
}

func (p *particle) Init(args ...any) {
	p.x, p.y = args[0].(float64), args[1].(float64)
}

func Example() {
	particles := pool.New[*particle](pool.Init(func() *particle { return new(particle) }))

	a, _ := particles.Allocate(1.0, 2.0)
	b, _ := particles.Allocate(3.0, 4.0)
	_, _ = particles.Allocate(5.0, 6.0)
	_ = particles.Release(a)

	_ = particles.ForEach(func(p *particle, i int) {
		fmt.Println(i, p.x, p.y)
	})
	fmt.Printf("%+v\n", particles.Info())

	c, _ := particles.Allocate(7.0, 8.0)
	fmt.Println(c == a, b.PoolIndex())
	// Output:
	// 0 5 6
	// 1 3 4
	// {Allocated:2 Released:1}
	// true 1
}
