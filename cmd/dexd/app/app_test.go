package app

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	dexapp "github.com/iov-one/dex/app"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/store"
	"github.com/iov-one/dex/x/offer"
	"github.com/iov-one/dex/x/rent"
	"github.com/iov-one/dex/x/sigs"
	"github.com/iov-one/dex/x/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "dex-test-chain"

type testChain struct {
	t      *testing.T
	app    dexapp.BaseApp
	seq    map[solana.PublicKey]int64
	height int64
}

func newTestChain(t *testing.T, appState string) *testChain {
	t.Helper()
	stack, err := Stack(prometheus.NewRegistry())
	require.NoError(t, err)
	application, err := Application(Name, stack, TxDecoder, "", false)
	require.NoError(t, err)
	application.WithInit(Initializers())
	application.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: []byte(appState)})
	application.Commit()
	return &testChain{t: t, app: application, seq: map[solana.PublicKey]int64{}}
}

// deliver signs msg with signer and runs it in a block of its own
func (c *testChain) deliver(signer solana.PrivateKey, msg dex.Msg) abci.ResponseDeliverTx {
	c.t.Helper()
	tx := &Tx{}
	require.NoError(c.t, tx.SetMsg(msg))
	sig, err := sigs.SignTx(signer, tx, chainID, c.seq[signer.PublicKey()])
	require.NoError(c.t, err)
	tx.Signatures = append(tx.Signatures, sig)
	raw, err := tx.Marshal()
	require.NoError(c.t, err)

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: chainID,
		Height:  c.height,
		Time:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(c.height) * time.Minute),
	}})
	res := c.app.DeliverTx(raw)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	// a valid signature bumps the sequence even if the message fails
	c.seq[signer.PublicKey()]++
	return res
}

func (c *testChain) query(path string, data []byte) []dex.Model {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	var keys, values dexapp.ResultSet
	require.NoError(c.t, keys.Unmarshal(res.Key))
	require.NoError(c.t, values.Unmarshal(res.Value))
	models, err := dexapp.JoinResults(&keys, &values)
	require.NoError(c.t, err)
	return models
}

func (c *testChain) balance(owner, mint solana.PublicKey) uint64 {
	c.t.Helper()
	addr, err := token.AssociatedAddress(owner, mint)
	require.NoError(c.t, err)
	models := c.query("/holdings", addr[:])
	if len(models) == 0 {
		return 0
	}
	var h token.Holding
	require.NoError(c.t, h.Unmarshal(models[0].Value))
	return h.Amount
}

func (c *testChain) lamports(owner solana.PublicKey) uint64 {
	c.t.Helper()
	models := c.query("/rent", owner[:])
	require.Len(c.t, models, 1)
	var a rent.Account
	require.NoError(c.t, a.Unmarshal(models[0].Value))
	return a.Lamports
}

func swapGenesis(maker, taker, mintA, mintB solana.PublicKey) string {
	return fmt.Sprintf(`{
		"conf": {
			"token": {"holding_deposit": 10},
			"offer": {"record_deposit": 7}
		},
		"rent": [
			{"owner": %q, "lamports": 1000},
			{"owner": %q, "lamports": 1000}
		],
		"token": {
			"mints": [
				{"address": %q, "decimals": 0},
				{"address": %q, "decimals": 0}
			],
			"holdings": [
				{"owner": %q, "mint": %q, "amount": "500"},
				{"owner": %q, "mint": %q, "amount": "80"}
			]
		}
	}`, maker, taker, mintA, mintB, maker, mintA, taker, mintB)
}

func TestSwapOverABCI(t *testing.T) {
	makerKey, takerKey := dextest.NewKey(), dextest.NewKey()
	maker, taker := makerKey.PublicKey(), takerKey.PublicKey()
	mintA, mintB := dextest.NewIdentity(), dextest.NewIdentity()
	chain := newTestChain(t, swapGenesis(maker, taker, mintA, mintB))

	res := chain.deliver(makerKey, &offer.MakeOfferMsg{
		Maker:          maker,
		ID:             1,
		MintA:          mintA,
		MintB:          mintB,
		AmountAOffered: 100,
		AmountBWanted:  50,
	})
	require.Equal(t, uint32(0), res.Code, res.Log)

	offers := chain.query("/offers?prefix", maker[:])
	require.Len(t, offers, 1)
	var o offer.Offer
	require.NoError(t, o.Unmarshal(offers[0].Value))
	assert.Equal(t, uint64(100), o.AmountAOffered)
	assert.Equal(t, uint64(50), o.AmountBWanted)
	assert.Equal(t, uint64(400), chain.balance(maker, mintA))
	assert.Equal(t, uint64(1000-7-10), chain.lamports(maker))

	authority, err := offer.DeriveAuthority(maker, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), chain.balance(authority.Address, mintA))
	vault, err := offer.VaultAddress(authority.Address, mintA)
	require.NoError(t, err)

	take := &offer.TakeOfferMsg{
		Taker:          taker,
		Maker:          maker,
		ID:             1,
		MintA:          mintA,
		MintB:          mintB,
		OfferAuthority: authority.Address,
		Vault:          vault,
	}
	res = chain.deliver(takerKey, take)
	require.Equal(t, uint32(0), res.Code, res.Log)

	assert.Equal(t, uint64(30), chain.balance(taker, mintB))
	assert.Equal(t, uint64(100), chain.balance(taker, mintA))
	assert.Equal(t, uint64(50), chain.balance(maker, mintB))
	assert.Equal(t, uint64(0), chain.balance(authority.Address, mintA))
	assert.Empty(t, chain.query("/offers?prefix", maker[:]))
	// the record deposit and the vault deposit come back, the maker
	// holding of B was paid by the taker
	assert.Equal(t, uint64(1000), chain.lamports(maker))
	assert.Equal(t, uint64(1000-2*10), chain.lamports(taker))

	// the offer is gone, a second take fails without touching balances
	res = chain.deliver(takerKey, take)
	assert.Equal(t, offer.ErrRecordMismatch.ABCICode(), res.Code, res.Log)
	assert.Equal(t, uint64(30), chain.balance(taker, mintB))
}

func TestSwapRejectsUnsignedMaker(t *testing.T) {
	makerKey, takerKey := dextest.NewKey(), dextest.NewKey()
	maker, taker := makerKey.PublicKey(), takerKey.PublicKey()
	mintA, mintB := dextest.NewIdentity(), dextest.NewIdentity()
	chain := newTestChain(t, swapGenesis(maker, taker, mintA, mintB))

	// the taker cannot open an offer in the name of the maker
	res := chain.deliver(takerKey, &offer.MakeOfferMsg{
		Maker:          maker,
		ID:             1,
		MintA:          mintA,
		MintB:          mintB,
		AmountAOffered: 100,
		AmountBWanted:  50,
	})
	assert.NotEqual(t, uint32(0), res.Code)
	assert.Equal(t, uint64(500), chain.balance(maker, mintA))
	assert.Equal(t, uint64(1000), chain.lamports(maker))
}

func TestGenInitOptions(t *testing.T) {
	owner := dextest.NewIdentity()
	raw, err := GenInitOptions([]string{owner.String()})
	require.NoError(t, err)

	var opts dex.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	db := store.MemStore()
	require.NoError(t, Initializers().FromGenesis(opts, db))

	var gen token.Genesis
	require.NoError(t, opts.ReadOptions("token", &gen))
	require.Len(t, gen.Mints, 2)
	for _, m := range gen.Mints {
		addr, err := token.AssociatedAddress(owner, m.Address)
		require.NoError(t, err)
		h, err := token.NewHoldingBucket().Get(db, addr)
		require.NoError(t, err)
		assert.Equal(t, owner, h.Owner)
		assert.NotZero(t, h.Amount)
	}

	_, err = GenInitOptions([]string{"not a key"})
	assert.Error(t, err)
}
