package offer

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAuthority(t *testing.T) {
	alice := dextest.SequenceKey(t, 1)
	bob := dextest.SequenceKey(t, 2)

	a1, err := DeriveAuthority(alice, 1)
	require.NoError(t, err)
	again, err := DeriveAuthority(alice, 1)
	require.NoError(t, err)
	assert.Equal(t, a1, again)

	a2, err := DeriveAuthority(alice, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a1.Address, a2.Address)

	b1, err := DeriveAuthority(bob, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a1.Address, b1.Address)

	got, err := VerifyAuthority(alice, 1, a1.Bump)
	require.NoError(t, err)
	assert.Equal(t, a1.Address, got)
}

func TestVerifyAuthorityWrongInput(t *testing.T) {
	alice := dextest.SequenceKey(t, 1)
	auth, err := DeriveAuthority(alice, 7)
	require.NoError(t, err)

	bumps := []uint8{auth.Bump - 1, auth.Bump + 1}
	for _, bump := range bumps {
		got, err := VerifyAuthority(alice, 7, bump)
		if err != nil {
			assert.True(t, ErrAuthorityMismatch.Is(err), "got %+v", err)
			continue
		}
		assert.NotEqual(t, auth.Address, got)
	}

	got, err := VerifyAuthority(alice, 8, auth.Bump)
	if err == nil {
		assert.NotEqual(t, auth.Address, got)
	}
}

func TestVaultAddress(t *testing.T) {
	alice := dextest.SequenceKey(t, 1)
	mintA := dextest.SequenceKey(t, 0xA)
	auth, err := DeriveAuthority(alice, 1)
	require.NoError(t, err)

	vault, err := VaultAddress(auth.Address, mintA)
	require.NoError(t, err)
	want, err := token.AssociatedAddress(auth.Address, mintA)
	require.NoError(t, err)
	assert.Equal(t, want, vault)
	assert.NotEqual(t, solana.PublicKey{}, vault)
}
