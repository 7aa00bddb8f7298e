// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package pool

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-pool/api"
)

// Pool recycles items of one type.
//
// Slots [0, top] of store hold live items, slots (top, len(store)) hold
// released items kept for reuse. Every live item's index equals its slot.
type Pool[T comparable] struct {
	ctor   api.Constructor[T]
	index  indexer[T]
	store  []T
	top    int
	locked bool

	cfg config
	log *zap.Logger
}

// New creates a pool for item types carrying their own index, usually by
// embedding Slot.
func New[T api.Indexed](ctor api.Constructor[T], opts ...Option) *Pool[T] {
	return newPool[T](ctor, func(int) indexer[T] { return fieldIndex[T]{} }, opts)
}

// NewTracked creates a pool that records item indexes in a side table.
// T must have identity semantics, such as a pointer.
func NewTracked[T comparable](ctor api.Constructor[T], opts ...Option) *Pool[T] {
	return newPool[T](ctor, func(capacity int) indexer[T] { return newTableIndex[T](capacity) }, opts)
}

func newPool[T comparable](ctor api.Constructor[T], mkIndex func(int) indexer[T], opts []Option) *Pool[T] {
	if ctor == nil {
		panic("pool: nil constructor")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pool[T]{
		ctor:  ctor,
		index: mkIndex(cfg.capacity),
		store: make([]T, 0, cfg.capacity),
		top:   -1,
		cfg:   cfg,
		log:   cfg.logger.With(zap.String("pool", cfg.name)),
	}
}

// Name returns the configured pool name.
func (p *Pool[T]) Name() string {
	return p.cfg.name
}

// Allocate returns a live item. A released item is reinitialized in place
// with args; otherwise a new one is constructed from args.
func (p *Pool[T]) Allocate(args ...any) (T, error) {
	if p.locked {
		var zero T
		return zero, p.reject(api.OpAllocate, p.lockedError(api.OpAllocate))
	}

	next := p.top + 1
	fresh := next == len(p.store)
	item := p.construct(next, fresh, args)
	if fresh {
		p.store = append(p.store, item)
		p.log.Debug("constructed item", zap.Int("slot", next))
	}
	p.top = next
	p.index.set(item, next)

	p.notify(api.Event{Op: api.OpAllocate, Fresh: fresh})
	return item, nil
}

// construct runs the constructor with the pool locked, so a constructor that
// calls back into the pool is rejected instead of shifting the slot at next.
func (p *Pool[T]) construct(next int, fresh bool, args []any) T {
	p.locked = true
	defer func() { p.locked = false }()
	if fresh {
		return p.ctor.New(args...)
	}
	item := p.store[next]
	p.ctor.Reinit(item, args...)
	return item
}

// Release moves a live item to the released region. The last live item takes
// its slot.
func (p *Pool[T]) Release(item T) error {
	if p.locked {
		return p.reject(api.OpRelease, p.lockedError(api.OpRelease))
	}
	idx := p.index.get(item)
	if idx < 0 || idx > p.top || p.store[idx] != item {
		err := api.NewError(api.ErrCodeNotAllocated, "item is not currently allocated").
			WithContext("op", api.OpRelease.String()).
			WithContext("pool", p.cfg.name).
			WithContext("index", idx)
		return p.reject(api.OpRelease, err)
	}

	if idx < p.top {
		last := p.store[p.top]
		p.store[idx] = last
		p.index.set(last, idx)
		p.store[p.top] = item
	}
	p.index.unset(item)
	p.top--

	p.notify(api.Event{Op: api.OpRelease})
	return nil
}

// Clean drops all released items.
func (p *Pool[T]) Clean() error {
	if p.locked {
		return p.reject(api.OpClean, p.lockedError(api.OpClean))
	}
	live := p.top + 1
	discarded := len(p.store) - live
	if discarded > 0 {
		clear(p.store[live:])
		p.store = p.store[:live]
		p.log.Debug("discarded released items", zap.Int("count", discarded))
	}

	p.notify(api.Event{Op: api.OpClean, Discarded: discarded})
	return nil
}

// ForEach calls visit for every live item in ascending slot order.
// Allocate, Release, Clean and ForEach are rejected until the pass ends;
// a rejected call does not stop the pass.
func (p *Pool[T]) ForEach(visit func(item T, index int)) error {
	if p.locked {
		return p.reject(api.OpForEach, p.lockedError(api.OpForEach))
	}
	p.locked = true
	defer func() { p.locked = false }()

	for i, item := range p.store[:p.top+1] {
		visit(item, i)
	}
	return nil
}

// Info reports the live/free partition. It is permitted at any time.
func (p *Pool[T]) Info() api.Info {
	allocated := p.top + 1
	return api.Info{
		Allocated: allocated,
		Released:  len(p.store) - allocated,
	}
}

// IsAllocated reports whether item is currently live in this pool.
func (p *Pool[T]) IsAllocated(item T) bool {
	idx := p.index.get(item)
	return idx >= 0 && idx <= p.top && p.store[idx] == item
}

var _ api.ObjectPool[*Slot] = (*Pool[*Slot])(nil)
