/*
Package dextest provides helpers and mocks for testing extensions.
*/
package dextest

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced signers. Signer and
// Signers are both considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer solana.PublicKey

	// Signers represents an authentication of multiple signers.
	Signers []solana.PublicKey
}

func (a *Auth) GetSigners(dex.Context) []solana.PublicKey {
	if !a.Signer.IsZero() {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasSigner(ctx dex.Context, key solana.PublicKey) bool {
	for _, s := range a.GetSigners(ctx) {
		if key.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx dex.Context, signers ...solana.PublicKey) dex.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx dex.Context) []solana.PublicKey {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]solana.PublicKey)
	if !ok {
		panic(fmt.Sprintf("instead of []solana.PublicKey got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasSigner(ctx dex.Context, key solana.PublicKey) bool {
	for _, s := range a.GetSigners(ctx) {
		if key.Equals(s) {
			return true
		}
	}
	return false
}
