package app

import (
	"reflect"

	"github.com/iov-one/dex"
)

// Decorators is an ordered stack of decorators waiting for its final
// handler. The first decorator is the outermost.
type Decorators struct {
	chain []dex.Decorator
}

// ChainDecorators starts a stack. Nil decorators are skipped, so optional
// ones can be passed unconditionally:
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
func ChainDecorators(chain ...dex.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with chain appended below the current one.
func (d Decorators) Chain(chain ...dex.Decorator) Decorators {
	all := make([]dex.Decorator, 0, len(d.chain)+len(chain))
	all = append(all, d.chain...)
	for _, dec := range chain {
		if !isNil(dec) {
			all = append(all, dec)
		}
	}
	return Decorators{chain: all}
}

func isNil(d dex.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h dex.Handler) dex.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step runs one decorator around the rest of the stack.
type step struct {
	d    dex.Decorator
	next dex.Handler
}

var _ dex.Handler = step{}

func (s step) Check(ctx dex.Context, store dex.KVStore, tx dex.Tx) (*dex.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx dex.Context, store dex.KVStore, tx dex.Tx) (*dex.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
