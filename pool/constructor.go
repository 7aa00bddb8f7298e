// File: pool/constructor.go
// Author: momentics <momentics@gmail.com>
//
// Adapters from plain functions and Init methods to api.Constructor.

package pool

import "github.com/momentics/hioload-pool/api"

// Funcs adapts a pair of functions to api.Constructor.
// A nil ReinitFunc leaves recycled items untouched.
type Funcs[T any] struct {
	NewFunc    func(args ...any) T
	ReinitFunc func(item T, args ...any)
}

// New calls NewFunc.
func (f Funcs[T]) New(args ...any) T {
	return f.NewFunc(args...)
}

// Reinit calls ReinitFunc when set.
func (f Funcs[T]) Reinit(item T, args ...any) {
	if f.ReinitFunc != nil {
		f.ReinitFunc(item, args...)
	}
}

// initConstructor runs the same Init routine for fresh and recycled items.
type initConstructor[T api.Initializer] struct {
	alloc func() T
}

// Init returns a constructor for types initialized through Init.
// alloc returns zero-state storage; Init is then applied on both paths.
func Init[T api.Initializer](alloc func() T) api.Constructor[T] {
	return initConstructor[T]{alloc: alloc}
}

func (c initConstructor[T]) New(args ...any) T {
	item := c.alloc()
	item.Init(args...)
	return item
}

func (c initConstructor[T]) Reinit(item T, args ...any) {
	item.Init(args...)
}

var _ api.Constructor[int] = Funcs[int]{}
