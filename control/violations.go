// control/violations.go
// Author: momentics <momentics@gmail.com>
//
// Bounded log of rejected pool operations.

package control

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-pool/api"
)

// DefaultViolationLogSize is used when a non-positive limit is given.
const DefaultViolationLogSize = 64

// ViolationLog is an api.ErrorHandler keeping the most recent rejections.
// When full, the oldest entry is dropped.
type ViolationLog struct {
	mu    sync.Mutex
	limit int
	q     *queue.Queue
	total uint64
}

// NewViolationLog creates a log retaining at most limit errors.
func NewViolationLog(limit int) *ViolationLog {
	if limit <= 0 {
		limit = DefaultViolationLogSize
	}
	return &ViolationLog{limit: limit, q: queue.New()}
}

// HandleError records err.
func (l *ViolationLog) HandleError(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.q.Length() == l.limit {
		l.q.Remove()
	}
	l.q.Add(err)
	l.total++
}

// Recent returns the retained errors, oldest first.
func (l *ViolationLog) Recent() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]error, l.q.Length())
	for i := range out {
		out[i] = l.q.Get(i).(error)
	}
	return out
}

// Len returns the number of retained errors.
func (l *ViolationLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Length()
}

// Total returns the number of errors ever recorded.
func (l *ViolationLog) Total() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

var _ api.ErrorHandler = (*ViolationLog)(nil)
