package sigs

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stdTx signs over raw payload bytes
type stdTx struct {
	dextest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)

func newStdTx(payload []byte) *stdTx {
	return &stdTx{Payload: payload}
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// sigCheckHandler stores the seen signers on each call
type sigCheckHandler struct {
	Signers []solana.PublicKey
}

func (s *sigCheckHandler) Check(ctx dex.Context, store dex.KVStore, tx dex.Tx) (*dex.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &dex.CheckResult{}, nil
}

func (s *sigCheckHandler) Deliver(ctx dex.Context, store dex.KVStore, tx dex.Tx) (*dex.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &dex.DeliverResult{}, nil
}

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(sigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := dex.WithChainID(context.Background(), chainID)

	priv := dextest.NewKey()
	want := []solana.PublicKey{priv.PublicKey()}

	tx := newStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec dex.Decorator, my dex.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec dex.Decorator, my dex.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(dex.Decorator, dex.Tx) error{check, deliver} {
		// no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d: %+v", i, err)

		// one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, want, signers.Signers)

		// replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d: %+v", i, err)

		// allowing none
		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, []solana.PublicKey{}, signers.Signers)

		// allowing, with next sequence
		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, want, signers.Signers)
	}
}

func TestDecoratorSkipsUnsignedTx(t *testing.T) {
	h := &dextest.Handler{}
	tx := &dextest.Tx{Msg: &dextest.Msg{RoutePath: "foo"}}
	ctx := dex.WithChainID(context.Background(), "unsigned-chain")

	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, h)
	require.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}
