package x

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners reveals all identities that authorized the current tx
	GetSigners(dex.Context) []solana.PublicKey
	// HasSigner checks if the identity authorized the current tx
	HasSigner(dex.Context, solana.PublicKey) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators
func (m MultiAuth) GetSigners(ctx dex.Context) []solana.PublicKey {
	var res []solana.PublicKey
	for _, impl := range m.impls {
		add := impl.GetSigners(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasSigner returns true iff any Authenticator support this
func (m MultiAuth) HasSigner(ctx dex.Context, key solana.PublicKey) bool {
	for _, impl := range m.impls {
		if impl.HasSigner(ctx, key) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any
func MainSigner(ctx dex.Context, auth Authenticator) (solana.PublicKey, bool) {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return solana.PublicKey{}, false
	}
	return signers[0], true
}

// HasAllSigners returns true if all elements in required are
// also in context.
func HasAllSigners(ctx dex.Context, auth Authenticator, required []solana.PublicKey) bool {
	for _, r := range required {
		if !auth.HasSigner(ctx, r) {
			return false
		}
	}
	return true
}

// ValidateKey returns an error if the key is not set.
func ValidateKey(name string, key solana.PublicKey) error {
	if key.IsZero() {
		return errors.Wrapf(errors.ErrEmpty, "%s is required", name)
	}
	return nil
}

// KeyFromBytes reads a 32 byte identity.
func KeyFromBytes(raw []byte) (solana.PublicKey, error) {
	var key solana.PublicKey
	if len(raw) != solana.PublicKeyLength {
		return key, errors.Wrapf(errors.ErrInput, "key must be %d bytes, got %d", solana.PublicKeyLength, len(raw))
	}
	copy(key[:], raw)
	return key, nil
}
