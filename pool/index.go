// File: pool/index.go
// Author: momentics <momentics@gmail.com>
//
// Pool index strategies: a field embedded in the item, or a side table.

package pool

import "github.com/momentics/hioload-pool/api"

// Slot is embedded in pooled types to carry their pool index.
// The zero value reads as api.Unallocated.
type Slot struct {
	pos int // index+1, so that zero means unallocated
}

// PoolIndex returns the slot index, or api.Unallocated.
func (s *Slot) PoolIndex() int { return s.pos - 1 }

// SetPoolIndex is reserved for the owning pool.
func (s *Slot) SetPoolIndex(idx int) { s.pos = idx + 1 }

// indexer reads and writes the pool index of an item.
type indexer[T comparable] interface {
	get(item T) int
	set(item T, idx int)
	unset(item T)
}

// fieldIndex stores the index inside the item itself.
type fieldIndex[T api.Indexed] struct{}

// get treats the zero item, such as the nil a rejected Allocate returns, as
// unallocated instead of dereferencing it.
func (fieldIndex[T]) get(item T) int {
	var zero T
	if item == zero {
		return api.Unallocated
	}
	return item.PoolIndex()
}

func (fieldIndex[T]) set(item T, idx int) { item.SetPoolIndex(idx) }
func (fieldIndex[T]) unset(item T) { item.SetPoolIndex(api.Unallocated) }

// tableIndex maps item identity to slot for types that cannot carry a field.
// Only live items have entries.
type tableIndex[T comparable] struct {
	slots map[T]int
}

func newTableIndex[T comparable](capacity int) *tableIndex[T] {
	return &tableIndex[T]{slots: make(map[T]int, capacity)}
}

func (t *tableIndex[T]) get(item T) int {
	if idx, ok := t.slots[item]; ok {
		return idx
	}
	return api.Unallocated
}

func (t *tableIndex[T]) set(item T, idx int) { t.slots[item] = idx }
func (t *tableIndex[T]) unset(item T) { delete(t.slots, item) }
