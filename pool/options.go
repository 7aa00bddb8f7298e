// File: pool/options.go
// Package pool defines functional options for Pool construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-pool/api"
)

// Option customizes pool initialization.
type Option func(*config)

type config struct {
	name          string
	capacity      int
	logger        *zap.Logger
	onError       api.ErrorHandler
	panicOnMisuse bool
	observers     []api.Observer
}

func defaultConfig() config {
	return config{
		name:   "pool",
		logger: zap.NewNop(),
	}
}

// WithName sets the name used in logs, metrics labels and error context.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithCapacity preallocates room for n slots in the backing store.
// No items are constructed.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithLogger attaches a structured logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorHandler routes every rejected operation to h.
// The rejected call still returns the error.
func WithErrorHandler(h api.ErrorHandler) Option {
	return func(c *config) {
		c.onError = h
	}
}

// WithPanicOnMisuse makes rejected operations panic with the error.
// A configured error handler runs before the panic.
func WithPanicOnMisuse() Option {
	return func(c *config) {
		c.panicOnMisuse = true
	}
}

// WithObserver appends an observer notified after every operation.
func WithObserver(o api.Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}
