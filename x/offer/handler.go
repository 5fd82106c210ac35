package offer

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x"
	"github.com/iov-one/dex/x/rent"
	"github.com/iov-one/dex/x/token"
)

const (
	makeOfferCost int64 = 300
	takeOfferCost int64 = 500
)

// RegisterRoutes registers the make and take handlers
func RegisterRoutes(r dex.Registry, auth x.Authenticator, tokens token.Controller, deposits rent.Controller) {
	bucket := NewBucket()
	r.Handle(&MakeOfferMsg{}, MakeOfferHandler{auth: auth, tokens: tokens, rent: deposits, bucket: bucket})
	r.Handle(&TakeOfferMsg{}, TakeOfferHandler{auth: auth, tokens: tokens, rent: deposits, bucket: bucket})
}

// RegisterQuery exposes open offers under "/offers"
func RegisterQuery(qr dex.QueryRouter) {
	NewBucket().Register("offers", qr)
}

// MakeOfferHandler opens an offer and funds its vault
type MakeOfferHandler struct {
	auth   x.Authenticator
	tokens token.Controller
	rent   rent.Controller
	bucket Bucket
}

var _ dex.Handler = MakeOfferHandler{}

type makeOffer struct {
	msg       *MakeOfferMsg
	mintA     *token.Mint
	source    *token.Holding
	authority Authority
}

func (h MakeOfferHandler) Check(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &dex.CheckResult{GasAllocated: makeOfferCost}, nil
}

// Deliver charges the record deposit, creates the vault, stores the record
// and moves the offered amount into the vault. Any failure leaves the store
// untouched once the savepoint discards it.
func (h MakeOfferHandler) Deliver(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.DeliverResult, error) {
	op, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	msg := op.msg

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := h.rent.Charge(db, msg.Maker, conf.RecordDeposit); err != nil {
		return nil, errors.Wrap(err, "record deposit")
	}
	vault, err := h.tokens.CreateAssociatedHolding(db, op.authority.Address, msg.MintA, msg.Maker)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}

	offer := &Offer{
		ID:             msg.ID,
		Maker:          msg.Maker,
		MintA:          msg.MintA,
		MintB:          msg.MintB,
		AmountAOffered: msg.AmountAOffered,
		AmountBWanted:  msg.AmountBWanted,
		Bump:           op.authority.Bump,
		Deposit:        conf.RecordDeposit,
	}
	if err := h.bucket.Save(db, offer); err != nil {
		return nil, errors.Wrap(err, "save offer")
	}

	err = h.tokens.Transfer(db, token.TransferRequest{
		From:      op.source.Address,
		To:        vault.Address,
		Mint:      msg.MintA,
		Amount:    msg.AmountAOffered,
		Decimals:  op.mintA.Decimals,
		Authority: msg.Maker,
	})
	if err != nil {
		return nil, errors.Wrap(err, "fund vault")
	}

	dex.GetLogger(ctx).Info("offer made",
		"maker", msg.Maker.String(), "id", msg.ID,
		"vault", vault.Address.String(), "amount_a", msg.AmountAOffered)
	return &dex.DeliverResult{Data: offer.Key()}, nil
}

func (h MakeOfferHandler) validate(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*makeOffer, error) {
	var msg MakeOfferMsg
	if err := dex.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasSigner(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}

	mintA, err := h.tokens.Mint(db, msg.MintA)
	if err != nil {
		return nil, err
	}
	if _, err := h.tokens.Mint(db, msg.MintB); err != nil {
		return nil, err
	}

	sourceAddr := msg.MakerHoldingA
	if sourceAddr.IsZero() {
		if sourceAddr, err = token.AssociatedAddress(msg.Maker, msg.MintA); err != nil {
			return nil, err
		}
	}
	source, err := h.tokens.Holding(db, sourceAddr)
	if err != nil {
		return nil, errors.Wrap(err, "maker holding")
	}
	if !source.Mint.Equals(msg.MintA) {
		return nil, errors.Wrapf(errors.ErrAssetMismatch, "maker holding is of mint %s", source.Mint)
	}
	if !source.Owner.Equals(msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker does not own the holding")
	}

	exists, err := h.bucket.Has(db, OfferKey(msg.Maker, msg.ID))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(ErrDuplicateOffer, "id %d", msg.ID)
	}

	authority, err := DeriveAuthority(msg.Maker, msg.ID)
	if err != nil {
		return nil, err
	}
	vaultAddr, err := VaultAddress(authority.Address, msg.MintA)
	if err != nil {
		return nil, err
	}
	switch _, err := h.tokens.Holding(db, vaultAddr); {
	case err == nil:
		return nil, errors.Wrapf(ErrDuplicateOffer, "vault %s already exists", vaultAddr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	if source.Amount < msg.AmountAOffered {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount,
			"holding has %d, offer needs %d", source.Amount, msg.AmountAOffered)
	}
	return &makeOffer{msg: &msg, mintA: mintA, source: source, authority: authority}, nil
}

// TakeOfferHandler closes an offer by swapping both sides at once
type TakeOfferHandler struct {
	auth   x.Authenticator
	tokens token.Controller
	rent   rent.Controller
	bucket Bucket
}

var _ dex.Handler = TakeOfferHandler{}

type takeOffer struct {
	msg       *TakeOfferMsg
	offer     *Offer
	mintA     *token.Mint
	mintB     *token.Mint
	authority solana.PublicKey
	vault     *token.Holding
	payment   *token.Holding
}

func (h TakeOfferHandler) Check(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &dex.CheckResult{GasAllocated: takeOfferCost}, nil
}

// Deliver pays the maker, drains the vault to the taker, then dissolves the
// vault and the record refunding both deposits to the maker.
func (h TakeOfferHandler) Deliver(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*dex.DeliverResult, error) {
	op, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	offer, taker := op.offer, op.msg.Taker

	makerB, err := h.tokens.EnsureAssociatedHolding(db, offer.Maker, offer.MintB, taker)
	if err != nil {
		return nil, errors.Wrap(err, "maker holding")
	}
	err = h.tokens.Transfer(db, token.TransferRequest{
		From:      op.payment.Address,
		To:        makerB.Address,
		Mint:      offer.MintB,
		Amount:    offer.AmountBWanted,
		Decimals:  op.mintB.Decimals,
		Authority: taker,
	})
	if err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}

	takerA, err := h.tokens.EnsureAssociatedHolding(db, taker, offer.MintA, taker)
	if err != nil {
		return nil, errors.Wrap(err, "taker holding")
	}
	vault, err := h.tokens.Holding(db, op.vault.Address)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if vault.Amount > 0 {
		err = h.tokens.Transfer(db, token.TransferRequest{
			From:      vault.Address,
			To:        takerA.Address,
			Mint:      offer.MintA,
			Amount:    vault.Amount,
			Decimals:  op.mintA.Decimals,
			Authority: op.authority,
		})
		if err != nil {
			return nil, errors.Wrap(err, "drain vault")
		}
	}

	if _, err := h.tokens.DissolveHolding(db, vault.Address, offer.Maker, op.authority); err != nil {
		return nil, errors.Wrap(err, "dissolve vault")
	}
	if err := h.bucket.Delete(db, offer.Key()); err != nil {
		return nil, errors.Wrap(err, "delete offer")
	}
	if err := h.rent.Credit(db, offer.Maker, offer.Deposit); err != nil {
		return nil, errors.Wrap(err, "refund record deposit")
	}

	dex.GetLogger(ctx).Info("offer taken",
		"maker", offer.Maker.String(), "id", offer.ID,
		"taker", taker.String(), "amount_a", vault.Amount, "amount_b", offer.AmountBWanted)
	return &dex.DeliverResult{Data: offer.Key()}, nil
}

func (h TakeOfferHandler) validate(ctx dex.Context, db dex.KVStore, tx dex.Tx) (*takeOffer, error) {
	var msg TakeOfferMsg
	if err := dex.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasSigner(ctx, msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	offer, err := h.bucket.Get(db, msg.Maker, msg.ID)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrRecordMismatch, "no offer %d of %s", msg.ID, msg.Maker)
	case err != nil:
		return nil, err
	}
	if !offer.MintA.Equals(msg.MintA) || !offer.MintB.Equals(msg.MintB) {
		return nil, errors.Wrap(ErrRecordMismatch, "mints differ from the offer")
	}

	authority, err := VerifyAuthority(offer.Maker, offer.ID, offer.Bump)
	if err != nil {
		return nil, err
	}
	if !authority.Equals(msg.OfferAuthority) {
		return nil, errors.Wrapf(ErrAuthorityMismatch, "want authority %s", authority)
	}
	vaultAddr, err := VaultAddress(authority, offer.MintA)
	if err != nil {
		return nil, err
	}
	if !vaultAddr.Equals(msg.Vault) {
		return nil, errors.Wrapf(ErrAuthorityMismatch, "want vault %s", vaultAddr)
	}
	vault, err := h.tokens.Holding(db, vaultAddr)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrRecordMismatch, "vault missing")
	case err != nil:
		return nil, err
	}
	if !vault.Owner.Equals(authority) || !vault.Mint.Equals(offer.MintA) {
		return nil, errors.Wrap(ErrAuthorityMismatch, "vault is not held by the authority")
	}

	mintA, err := h.tokens.Mint(db, offer.MintA)
	if err != nil {
		return nil, err
	}
	mintB, err := h.tokens.Mint(db, offer.MintB)
	if err != nil {
		return nil, err
	}

	paymentAddr := msg.TakerHoldingB
	if paymentAddr.IsZero() {
		if paymentAddr, err = token.AssociatedAddress(msg.Taker, offer.MintB); err != nil {
			return nil, err
		}
	}
	payment, err := h.tokens.Holding(db, paymentAddr)
	if err != nil {
		return nil, errors.Wrap(err, "taker holding")
	}
	if !payment.Mint.Equals(offer.MintB) {
		return nil, errors.Wrapf(errors.ErrAssetMismatch, "taker holding is of mint %s", payment.Mint)
	}
	if !payment.Owner.Equals(msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker does not own the holding")
	}
	if payment.Amount < offer.AmountBWanted {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount,
			"holding has %d, offer wants %d", payment.Amount, offer.AmountBWanted)
	}

	return &takeOffer{
		msg:       &msg,
		offer:     offer,
		mintA:     mintA,
		mintB:     mintB,
		authority: authority,
		vault:     vault,
		payment:   payment,
	}, nil
}
