// File: pool/report.go
// Author: momentics <momentics@gmail.com>
//
// Error-reporting policy for rejected pool operations.

package pool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/momentics/hioload-pool/api"
)

func (p *Pool[T]) lockedError(op api.Op) *api.Error {
	return api.NewError(api.ErrCodeLocked, "cannot "+op.String()+" while the pool is locked by ForEach or a constructor").
		WithContext("op", op.String()).
		WithContext("pool", p.cfg.name)
}

// reject surfaces err through every configured channel: log, observers,
// handler, and finally a panic when misuse is fatal. The pool is untouched.
func (p *Pool[T]) reject(op api.Op, err *api.Error) error {
	p.log.Warn("rejected pool operation",
		zap.String("op", op.String()),
		zap.Stringer("code", err.Code),
		zap.Error(err),
	)
	p.notify(api.Event{Op: op, Err: err})
	if p.cfg.onError != nil {
		p.cfg.onError.HandleError(err)
	}
	if p.cfg.panicOnMisuse {
		panic(errors.WithStack(err))
	}
	return err
}

func (p *Pool[T]) notify(ev api.Event) {
	if len(p.cfg.observers) == 0 {
		return
	}
	ev.Pool = p.cfg.name
	ev.Info = p.Info()
	for _, o := range p.cfg.observers {
		o.Observe(ev)
	}
}
