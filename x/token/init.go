package token

import (
	"math"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/gconf"
	"github.com/shopspring/decimal"
)

const optKey = "token"

// GenesisMint declares an asset in the genesis file
type GenesisMint struct {
	Address  solana.PublicKey `json:"address"`
	Decimals uint8            `json:"decimals"`
}

// GenesisHolding funds the associated holding of owner. Amount is a decimal
// string in whole units, e.g. "12.5", scaled by the mint decimals.
type GenesisHolding struct {
	Owner  solana.PublicKey `json:"owner"`
	Mint   solana.PublicKey `json:"mint"`
	Amount string           `json:"amount"`
}

// Genesis is the "token" section of the genesis file
type Genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Holdings []GenesisHolding `json:"holdings"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ dex.Initializer = Initializer{}

// FromGenesis stores the configuration, all mints and funds the genesis
// holdings. Genesis holdings carry no deposit.
func (Initializer) FromGenesis(opts dex.Options, db dex.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	mints := NewMintBucket()
	declared := make(map[solana.PublicKey]*Mint, len(gen.Mints))
	for _, gm := range gen.Mints {
		if _, ok := declared[gm.Address]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "mint %s", gm.Address)
		}
		m := &Mint{Address: gm.Address, Decimals: gm.Decimals}
		if err := m.Validate(); err != nil {
			return errors.Wrapf(err, "mint %s", gm.Address)
		}
		declared[gm.Address] = m
	}

	holdings := NewHoldingBucket()
	for i, gh := range gen.Holdings {
		m, ok := declared[gh.Mint]
		if !ok {
			return errors.Wrapf(errors.ErrNotFound, "holding %d: mint %s", i, gh.Mint)
		}
		amount, err := ParseAmount(gh.Amount, m.Decimals)
		if err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
		if m.Supply > math.MaxUint64-amount {
			return errors.Wrapf(errors.ErrOverflow, "supply of %s", m.Address)
		}
		m.Supply += amount

		addr, err := AssociatedAddress(gh.Owner, gh.Mint)
		if err != nil {
			return err
		}
		switch has, err := holdings.Has(db, addr[:]); {
		case err != nil:
			return err
		case has:
			return errors.Wrapf(errors.ErrDuplicate, "holding %d", i)
		}
		h := &Holding{
			Address: addr,
			Owner:   gh.Owner,
			Mint:    gh.Mint,
			Amount:  amount,
		}
		if err := holdings.Save(db, h); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
	}

	for _, gm := range gen.Mints {
		if err := mints.Save(db, declared[gm.Address]); err != nil {
			return err
		}
	}
	return nil
}

// ParseAmount converts a decimal string of whole units into base units of
// a mint with given decimals. Amounts more precise than the mint, negative
// or above uint64 are rejected.
func ParseAmount(s string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(errors.ErrAmount, "negative %q", s)
	}
	base := d.Shift(int32(decimals))
	if !base.IsInteger() {
		return 0, errors.Wrapf(errors.ErrAmount, "%q has more than %d decimals", s, decimals)
	}
	n := base.BigInt()
	if !n.IsUint64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "%q", s)
	}
	return n.Uint64(), nil
}

// FormatAmount renders base units as a decimal string of whole units.
func FormatAmount(amount uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals)).String()
}
