package app

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete ABCI application: StoreApp plus transaction
// decoding and dispatch to handler.
type BaseApp struct {
	*StoreApp
	decoder dex.TxDecoder
	handler dex.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns the app. With debug set, error responses carry the
// full error chain.
func NewBaseApp(store *StoreApp, decoder dex.TxDecoder, handler dex.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return dex.DeliverTxError(err, b.debug)
	}
	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return dex.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return dex.CheckTxError(err, b.debug)
	}
	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return dex.CheckOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx dex.Tx) dex.Context {
	return dex.WithLogInfo(b.BlockContext(), "call", call, "path", dex.GetPath(tx))
}

// decode turns a panicking decoder into an error.
func (b BaseApp) decode(txBytes []byte) (tx dex.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
