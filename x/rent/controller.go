package rent

import (
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// Controller moves native deposits between accounts.
type Controller interface {
	// Balance returns the lamports owned by the identity.
	Balance(db dex.ReadOnlyKVStore, owner solana.PublicKey) (uint64, error)
	// Charge removes amount from the owner or fails with
	// ErrInsufficientAmount.
	Charge(db dex.KVStore, owner solana.PublicKey, amount uint64) error
	// Credit adds amount to the owner, creating the account if needed.
	Credit(db dex.KVStore, owner solana.PublicKey, amount uint64) error
}

// BaseController is the default implementation backed by the rent bucket
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the rent bucket
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db dex.ReadOnlyKVStore, owner solana.PublicKey) (uint64, error) {
	acc, err := c.bucket.GetOrCreate(db, owner)
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

func (c BaseController) Charge(db dex.KVStore, owner solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}
	acc, err := c.bucket.GetOrCreate(db, owner)
	if err != nil {
		return err
	}
	if acc.Lamports < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"deposit of %d lamports, %s has %d", amount, owner, acc.Lamports)
	}
	acc.Lamports -= amount
	return c.bucket.Save(db, acc)
}

func (c BaseController) Credit(db dex.KVStore, owner solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}
	acc, err := c.bucket.GetOrCreate(db, owner)
	if err != nil {
		return err
	}
	if acc.Lamports > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "crediting %d lamports to %s", amount, owner)
	}
	acc.Lamports += amount
	return c.bucket.Save(db, acc)
}
