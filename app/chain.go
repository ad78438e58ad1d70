package app

import (
	"reflect"

	"github.com/iov-one/escrowd"
)

// Decorators is an ordered list of decorators that is not yet bound to a
// handler. The first decorator is the outermost one.
//
// The escrow node builds its stack as
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     utils.NewActionTagger(),
//     utils.NewSavepoint().OnCheck(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators struct {
	chain []weave.Decorator
}

// ChainDecorators ignores nil decorators, so that optional ones can be
// passed unconditionally.
func ChainDecorators(ds ...weave.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new list with ds appended. The receiver is not modified.
func (d Decorators) Chain(ds ...weave.Decorator) Decorators {
	chain := make([]weave.Decorator, 0, len(d.chain)+len(ds))
	chain = append(chain, d.chain...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNilDecorator(d weave.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler binds the list to h and returns the resulting handler.
func (d Decorators) WithHandler(h weave.Handler) weave.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{decorator: d.chain[i], next: h}
	}
	return h
}

// decorated calls a decorator with the rest of the stack as next.
type decorated struct {
	decorator weave.Decorator
	next      weave.Handler
}

var _ weave.Handler = decorated{}

func (s decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return s.decorator.Check(ctx, db, tx, s.next)
}

func (s decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return s.decorator.Deliver(ctx, db, tx, s.next)
}
