package utils

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ dex.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Checker) (_ *dex.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Deliverer) (_ *dex.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
