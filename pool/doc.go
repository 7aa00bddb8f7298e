// Package pool
// Author: momentics <momentics@gmail.com>
//
// Recycling object pool for high-frequency, short-lived objects.
//
// A Pool keeps one backing slice split into a live prefix and a released
// suffix. Allocate reuses the first released slot (reinitializing the item in
// place) or appends a freshly constructed one, Release swaps the item with the
// last live one, and ForEach walks the live prefix under a reentrancy lock.
// Every item carries its slot index, either in an embedded Slot (New) or in a
// side table owned by the pool (NewTracked).
//
// Pools are not safe for concurrent use. The lock only guards against
// mutation from inside a ForEach callback on the same goroutine.
package pool
