// File: api/events.go
// Author: momentics <momentics@gmail.com>
//
// Pool operation events delivered to observers.

package api

// Op identifies a pool operation.
type Op int

const (
	OpAllocate Op = iota
	OpRelease
	OpClean
	OpForEach
)

func (o Op) String() string {
	switch o {
	case OpAllocate:
		return "allocate"
	case OpRelease:
		return "release"
	case OpClean:
		return "clean"
	case OpForEach:
		return "forEach"
	default:
		return "unknown"
	}
}

// Event describes one completed or rejected pool operation.
type Event struct {
	Pool string
	Op   Op
	// Fresh is set when an allocation constructed a new item.
	Fresh bool
	// Discarded counts the items dropped by a clean.
	Discarded int
	// Info is the partition after the operation.
	Info Info
	// Err is non-nil when the operation was rejected.
	Err error
}

// Observer is notified synchronously, on the pool's goroutine, after every
// operation. Implementations must not call back into the pool.
type Observer interface {
	Observe(ev Event)
}
