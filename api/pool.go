// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: construction capability, pool index contract
// and the recycling object pool surface.

package api

// Unallocated is the pool index carried by an item that is not live.
const Unallocated = -1

// Constructor builds fresh items and resets recycled ones.
// Both paths must accept the same arguments so that fresh and recycled
// items are observably equivalent after construction.
type Constructor[T any] interface {
	// New constructs a brand-new item from args.
	New(args ...any) T

	// Reinit resets an existing item in place as if New had built it from args.
	Reinit(item T, args ...any)
}

// Initializer is implemented by types whose single Init routine serves both
// fresh construction and in-place reinitialization.
type Initializer interface {
	Init(args ...any)
}

// Indexed constrains item types that carry their own pool index field.
// Implementations must be comparable by identity, typically a pointer.
type Indexed interface {
	comparable
	PoolIndex() int
	SetPoolIndex(idx int)
}

// Info reports the live/free partition of a pool.
type Info struct {
	Allocated int `json:"allocated"`
	Released  int `json:"released"`
}

// Total returns the number of retained items, live or released.
func (i Info) Total() int {
	return i.Allocated + i.Released
}

// ObjectPool hands out recycled items and tracks which ones are live.
type ObjectPool[T any] interface {
	// Allocate returns a live item built or reinitialized from args.
	Allocate(args ...any) (T, error)

	// Release returns a live item to the free region.
	Release(item T) error

	// Clean discards every released item.
	Clean() error

	// ForEach visits live items in ascending slot order under the iteration lock.
	ForEach(visit func(item T, index int)) error

	// Info reports the live/free partition.
	Info() Info
}
