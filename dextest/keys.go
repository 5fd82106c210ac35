package dextest

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

// NewKey returns a fresh ed25519 private key.
// It panics if the system random source fails.
func NewKey() solana.PrivateKey {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// NewIdentity returns the public key of a fresh private key.
func NewIdentity() solana.PublicKey {
	return NewKey().PublicKey()
}

// SequenceKey returns a deterministic identity. Different n give
// different keys, useful for readable table tests.
func SequenceKey(t testing.TB, n byte) solana.PublicKey {
	t.Helper()
	if n == 0 {
		t.Fatal("sequence key 0 is the zero identity")
	}
	var k solana.PublicKey
	for i := range k {
		k[i] = n
	}
	return k
}
