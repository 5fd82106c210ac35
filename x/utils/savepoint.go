package utils

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ dex.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Checker) (*dex.CheckResult, error) {
	var res *dex.CheckResult
	err := isolate(s.onCheck, store, func(db dex.KVStore) error {
		var err error
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Deliverer) (*dex.DeliverResult, error) {
	var res *dex.DeliverResult
	err := isolate(s.onDeliver, store, func(db dex.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate runs fn on a cache wrap of store. The wrap is written only if fn
// succeeds. Stores that cannot be wrapped are passed through untouched.
func isolate(active bool, store dex.KVStore, fn func(dex.KVStore) error) error {
	if !active {
		return fn(store)
	}
	cstore, ok := store.(dex.CacheableKVStore)
	if !ok {
		return fn(store)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
