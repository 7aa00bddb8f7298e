// Package fake
// Author: momentics <momentics@gmail.com>
//
// Spy constructor and pooled item for testing pools.

package fake

import (
	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

// Mode tells how an item was brought to life.
type Mode int

const (
	ModeFresh Mode = iota
	ModeReinit
)

func (m Mode) String() string {
	if m == ModeReinit {
		return "reinit"
	}
	return "fresh"
}

// Item is a pooled type recording the arguments of its last construction.
type Item struct {
	pool.Slot
	Serial int
	Args   []any
	Mode   Mode
}

// Call is one recorded constructor invocation.
type Call struct {
	Mode Mode
	Item *Item
	Args []any
}

// Constructor is an api.Constructor[*Item] that records every call.
type Constructor struct {
	Calls  []Call
	serial int
}

// New builds a fresh item.
func (c *Constructor) New(args ...any) *Item {
	c.serial++
	item := &Item{Serial: c.serial, Args: args, Mode: ModeFresh}
	c.Calls = append(c.Calls, Call{Mode: ModeFresh, Item: item, Args: args})
	return item
}

// Reinit resets an existing item.
func (c *Constructor) Reinit(item *Item, args ...any) {
	item.Args = args
	item.Mode = ModeReinit
	c.Calls = append(c.Calls, Call{Mode: ModeReinit, Item: item, Args: args})
}

// Count returns the number of recorded calls in mode m.
func (c *Constructor) Count(m Mode) int {
	n := 0
	for _, call := range c.Calls {
		if call.Mode == m {
			n++
		}
	}
	return n
}

// Last returns the most recent call.
func (c *Constructor) Last() Call {
	return c.Calls[len(c.Calls)-1]
}

// Reset forgets recorded calls.
func (c *Constructor) Reset() {
	c.Calls = nil
}

// Recorder is an api.Observer keeping every event.
type Recorder struct {
	Events []api.Event
}

// Observe appends ev.
func (r *Recorder) Observe(ev api.Event) {
	r.Events = append(r.Events, ev)
}

var (
	_ api.Constructor[*Item] = (*Constructor)(nil)
	_ api.Observer           = (*Recorder)(nil)
)
