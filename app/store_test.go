package app

import (
	"context"
	"testing"

	"github.com/iov-one/dex"
	"github.com/iov-one/dex/dextest"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// rawQuery returns the value stored under the exact key
type rawQuery struct{}

func (rawQuery) Query(db dex.ReadOnlyKVStore, mod string, data []byte) ([]dex.Model, error) {
	if mod != dex.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod %q", mod)
	}
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []dex.Model{dex.Pair(data, v)}, nil
}

func newTestApp(t *testing.T, h dex.Handler, decoder dex.TxDecoder) BaseApp {
	t.Helper()
	qr := dex.NewQueryRouter()
	qr.Register("/raw", rawQuery{})
	store := NewStoreApp("dex-test", iavl.MockCommitStore(), qr, context.Background())
	return NewBaseApp(store, decoder, h, false)
}

func pathDecoder(raw []byte) (dex.Tx, error) {
	if len(raw) == 0 {
		panic("empty tx")
	}
	return &dextest.Tx{Msg: &dextest.Msg{RoutePath: string(raw)}}, nil
}

func TestStoreAppLifecycle(t *testing.T) {
	var gotOpts dex.Options
	h := &dextest.Handler{WriteKey: []byte("k"), WriteValue: []byte("v")}
	app := newTestApp(t, h, pathDecoder)
	app.WithInit(initFunc(func(opts dex.Options, db dex.KVStore) error {
		gotOpts = opts
		return db.Set([]byte("genesis"), []byte("yes"))
	}))

	app.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{"offer": {"record_deposit": 7}}`)})
	assert.Equal(t, "test-chain", app.GetChainID())
	assert.JSONEq(t, `{"record_deposit": 7}`, string(gotOpts["offer"]))

	// the chain id can be set only once
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "other-chain", AppStateBytes: []byte(`{}`)})
	})

	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	check := app.CheckTx([]byte("offer/make"))
	require.Equal(t, errors.SuccessABCICode, check.Code, check.Log)
	deliver := app.DeliverTx([]byte("offer/make"))
	require.Equal(t, errors.SuccessABCICode, deliver.Code, deliver.Log)

	// nothing is visible to queries before commit
	q := app.Query(abci.RequestQuery{Path: "/raw", Data: []byte("k")})
	require.Equal(t, errors.SuccessABCICode, q.Code, q.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(q.Value))
	assert.Empty(t, values.Results)

	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	q = app.Query(abci.RequestQuery{Path: "/raw", Data: []byte("k")})
	require.Equal(t, errors.SuccessABCICode, q.Code, q.Log)
	assert.Equal(t, int64(1), q.Height)
	require.NoError(t, values.Unmarshal(q.Value))
	assert.Equal(t, [][]byte{[]byte("v")}, values.Results)

	var dummy dextest.Msg
	q = app.Query(abci.RequestQuery{Path: "/raw", Data: []byte("genesis")})
	require.NoError(t, UnmarshalOneResult(q.Value, &dummy))
	assert.Equal(t, []byte("yes"), dummy.Serialized)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "dex-test", info.Data)
}

func TestBaseAppErrors(t *testing.T) {
	h := &dextest.Handler{DeliverErr: errors.Wrap(errors.ErrInsufficientAmount, "vault")}
	app := newTestApp(t, h, pathDecoder)
	app.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})

	res := app.DeliverTx([]byte("offer/take"))
	assert.Equal(t, errors.ErrInsufficientAmount.ABCICode(), res.Code)

	// decoder panics are reported as redacted internal errors
	res = app.DeliverTx(nil)
	assert.Equal(t, uint32(1), res.Code)
	assert.Contains(t, res.Log, "internal error")

	q := app.Query(abci.RequestQuery{Path: "/missing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)

	q = app.Query(abci.RequestQuery{Path: "/raw?prefix"})
	assert.Equal(t, errors.ErrInput.ABCICode(), q.Code)
}

func TestInitChainRequiresAppState(t *testing.T) {
	app := newTestApp(t, &dextest.Handler{}, pathDecoder)
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain"})
	})
}
