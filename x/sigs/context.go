package sigs

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx dex.Context, signers []solana.PublicKey) dex.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gives access to the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context.
// May be empty
func (a Authenticate) GetSigners(ctx dex.Context) []solana.PublicKey {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]solana.PublicKey)
	return val
}

// HasSigner returns true if the key signed the current Context.
func (a Authenticate) HasSigner(ctx dex.Context, key solana.PublicKey) bool {
	for _, s := range a.GetSigners(ctx) {
		if key.Equals(s) {
			return true
		}
	}
	return false
}
