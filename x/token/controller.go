package token

import (
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x/rent"
)

// TransferRequest describes a move of value between two holdings.
type TransferRequest struct {
	From solana.PublicKey
	To   solana.PublicKey
	Mint solana.PublicKey
	// Amount in base units
	Amount uint64
	// Decimals must equal the declared decimals of the mint
	Decimals uint8
	// Authority must be the owner of the From holding
	Authority solana.PublicKey
}

// Controller is the asset transfer service used by other extensions.
type Controller interface {
	// Mint loads a mint or fails with ErrNotFound
	Mint(db dex.ReadOnlyKVStore, addr solana.PublicKey) (*Mint, error)
	// Holding loads a holding or fails with ErrNotFound
	Holding(db dex.ReadOnlyKVStore, addr solana.PublicKey) (*Holding, error)
	// CreateAssociatedHolding creates the associated holding of owner for
	// mint and charges its deposit to payer. ErrDuplicate is returned if
	// it already exists.
	CreateAssociatedHolding(db dex.KVStore, owner, mint, payer solana.PublicKey) (*Holding, error)
	// EnsureAssociatedHolding returns the associated holding, creating it
	// at the payer's expense if missing.
	EnsureAssociatedHolding(db dex.KVStore, owner, mint, payer solana.PublicKey) (*Holding, error)
	// Transfer moves the amount if all conditions of the request hold.
	Transfer(db dex.KVStore, req TransferRequest) error
	// DissolveHolding removes an empty holding and refunds its deposit to
	// refundTo. The refunded amount is returned.
	DissolveHolding(db dex.KVStore, holding, refundTo, authority solana.PublicKey) (uint64, error)
}

// BaseController is the default token Controller
type BaseController struct {
	mints    MintBucket
	holdings HoldingBucket
	rent     rent.Controller
}

var _ Controller = BaseController{}

// NewController returns a controller paying deposits with the given rent
// controller.
func NewController(rc rent.Controller) BaseController {
	return BaseController{
		mints:    NewMintBucket(),
		holdings: NewHoldingBucket(),
		rent:     rc,
	}
}

func (c BaseController) Mint(db dex.ReadOnlyKVStore, addr solana.PublicKey) (*Mint, error) {
	return c.mints.Get(db, addr)
}

func (c BaseController) Holding(db dex.ReadOnlyKVStore, addr solana.PublicKey) (*Holding, error) {
	return c.holdings.Get(db, addr)
}

func (c BaseController) CreateAssociatedHolding(db dex.KVStore, owner, mint, payer solana.PublicKey) (*Holding, error) {
	if _, err := c.mints.Get(db, mint); err != nil {
		return nil, err
	}
	addr, err := AssociatedAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	switch has, err := c.holdings.Has(db, addr[:]); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "holding %s", addr)
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := c.rent.Charge(db, payer, conf.HoldingDeposit); err != nil {
		return nil, errors.Wrap(err, "holding deposit")
	}
	h := &Holding{
		Address: addr,
		Owner:   owner,
		Mint:    mint,
		Deposit: conf.HoldingDeposit,
	}
	if err := c.holdings.Save(db, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (c BaseController) EnsureAssociatedHolding(db dex.KVStore, owner, mint, payer solana.PublicKey) (*Holding, error) {
	addr, err := AssociatedAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	h, err := c.holdings.Get(db, addr)
	switch {
	case err == nil:
		if !h.Owner.Equals(owner) || !h.Mint.Equals(mint) {
			return nil, errors.Wrapf(errors.ErrState, "holding %s is not associated", addr)
		}
		return h, nil
	case errors.ErrNotFound.Is(err):
		return c.CreateAssociatedHolding(db, owner, mint, payer)
	default:
		return nil, err
	}
}

func (c BaseController) Transfer(db dex.KVStore, req TransferRequest) error {
	if req.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "transfer of zero")
	}
	mint, err := c.mints.Get(db, req.Mint)
	if err != nil {
		return err
	}
	if mint.Decimals != req.Decimals {
		return errors.Wrapf(errors.ErrAssetMismatch, "mint has %d decimals, got %d", mint.Decimals, req.Decimals)
	}

	from, err := c.holdings.Get(db, req.From)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.holdings.Get(db, req.To)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !from.Mint.Equals(req.Mint) {
		return errors.Wrapf(errors.ErrAssetMismatch, "source holds %s", from.Mint)
	}
	if !to.Mint.Equals(req.Mint) {
		return errors.Wrapf(errors.ErrAssetMismatch, "destination holds %s", to.Mint)
	}
	if !from.Owner.Equals(req.Authority) {
		return errors.Wrap(errors.ErrUnauthorized, "authority does not own the source")
	}
	if from.Amount < req.Amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "source has %d, need %d", from.Amount, req.Amount)
	}
	if from.Address.Equals(to.Address) {
		return nil
	}
	if to.Amount > math.MaxUint64-req.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	from.Amount -= req.Amount
	to.Amount += req.Amount
	if err := c.holdings.Save(db, from); err != nil {
		return err
	}
	return c.holdings.Save(db, to)
}

func (c BaseController) DissolveHolding(db dex.KVStore, holding, refundTo, authority solana.PublicKey) (uint64, error) {
	h, err := c.holdings.Get(db, holding)
	if err != nil {
		return 0, err
	}
	if !h.Owner.Equals(authority) {
		return 0, errors.Wrap(errors.ErrUnauthorized, "authority does not own the holding")
	}
	if h.Amount != 0 {
		return 0, errors.Wrapf(errors.ErrState, "holding %s still has %d", holding, h.Amount)
	}
	if err := c.holdings.Delete(db, holding[:]); err != nil {
		return 0, err
	}
	if err := c.rent.Credit(db, refundTo, h.Deposit); err != nil {
		return 0, errors.Wrap(err, "refund deposit")
	}
	return h.Deposit, nil
}
