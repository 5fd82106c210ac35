package token

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x"
)

const (
	transferCost = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r dex.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&TransferMsg{}, NewTransferHandler(auth, control))
}

// RegisterQuery will register the mints under "/mints" and the holdings
// under "/holdings"
func RegisterQuery(qr dex.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewHoldingBucket().Register("holdings", qr)
}

// TransferHandler will handle sending tokens
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ dex.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, control Controller) TransferHandler {
	return TransferHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h TransferHandler) Check(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &dex.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver moves the tokens from source to destination if
// all preconditions are met
func (h TransferHandler) Deliver(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	from, err := AssociatedAddress(msg.Source, msg.Mint)
	if err != nil {
		return nil, err
	}
	to, err := h.control.EnsureAssociatedHolding(db, msg.Destination, msg.Mint, msg.Source)
	if err != nil {
		return nil, errors.Wrap(err, "destination holding")
	}
	err = h.control.Transfer(db, TransferRequest{
		From:      from,
		To:        to.Address,
		Mint:      msg.Mint,
		Amount:    msg.Amount,
		Decimals:  msg.Decimals,
		Authority: msg.Source,
	})
	if err != nil {
		return nil, err
	}
	return &dex.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx dex.Context, tx dex.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := dex.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasSigner(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
