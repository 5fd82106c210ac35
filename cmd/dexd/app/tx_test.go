package app

import (
	"testing"

	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x/offer"
	"github.com/iov-one/dex/x/sigs"
	"github.com/iov-one/dex/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxEncoding(t *testing.T) {
	signer := dextest.NewKey()
	msg := &offer.MakeOfferMsg{
		Maker:          signer.PublicKey(),
		ID:             1,
		MintA:          dextest.SequenceKey(t, 0xA),
		MintB:          dextest.SequenceKey(t, 0xB),
		AmountAOffered: 100,
		AmountBWanted:  50,
	}
	tx := &Tx{}
	require.NoError(t, tx.SetMsg(msg))
	sig, err := sigs.SignTx(signer, tx, "test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = append(tx.Signatures, sig)

	raw, err := tx.Marshal()
	require.NoError(t, err)
	got, err := TxDecoder(raw)
	require.NoError(t, err)
	assert.Equal(t, tx, got)

	// signatures are not part of what is signed
	unsigned := &Tx{MakeOfferMsg: msg}
	want, err := unsigned.GetSignBytes()
	require.NoError(t, err)
	signBytes, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, want, signBytes)
	assert.Len(t, tx.Signatures, 1)
}

func TestTxGetMsg(t *testing.T) {
	_, err := (&Tx{}).GetMsg()
	assert.True(t, errors.ErrMsg.Is(err), "got %+v", err)

	both := &Tx{MakeOfferMsg: &offer.MakeOfferMsg{}, TransferMsg: &token.TransferMsg{}}
	_, err = both.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err), "got %+v", err)

	one := &Tx{TakeOfferMsg: &offer.TakeOfferMsg{ID: 3}}
	msg, err := one.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "offer/take", msg.Path())

	assert.True(t, errors.ErrType.Is(one.SetMsg(&dextest.Msg{})))
}
