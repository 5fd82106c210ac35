/*
Package sigs verifies the ed25519 signatures of a transaction and keeps a
sequence per signer against replays.
*/
package sigs

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// gas charged on CheckTx for every valid signature
const signatureVerifyCost = 500

// RegisterQuery exposes the signer sequences as "/auth"
func RegisterQuery(qr dex.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and puts the signers on
// the context. Transactions that cannot carry signatures pass unchanged.
type Decorator struct {
	allowMissingSigs bool
}

var _ dex.Decorator = Decorator{}

// NewDecorator requires at least one signature on every SignedTx.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets a SignedTx without signatures through.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Checker) (*dex.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx dex.Context, store dex.KVStore, tx dex.Tx, next dex.Deliverer) (*dex.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// authenticate returns ctx with the verified signers and their count.
func (d Decorator) authenticate(ctx dex.Context, store dex.KVStore, tx dex.Tx) (dex.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(store, stx, dex.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
