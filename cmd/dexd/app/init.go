package app

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/app"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x/offer"
	"github.com/iov-one/dex/x/rent"
	"github.com/iov-one/dex/x/token"
)

const (
	// default deposits of a new chain, in lamports
	defaultHoldingDeposit = 2039280
	defaultRecordDeposit  = 1016880

	defaultLamports = 10000000000
	defaultBalance  = "1000"
)

// Initializers returns all initializers of the application, in the order
// they must run.
func Initializers() dex.Initializer {
	return app.ChainInitializers(
		rent.Initializer{},
		token.Initializer{},
		offer.Initializer{},
	)
}

// GenInitOptions generates the app_state of a new chain with two assets and
// one funded owner. The owner is the base58 key passed as the first
// argument; a fresh key is created if none is given.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner solana.PublicKey
	if len(args) > 0 {
		key, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "owner %q: %s", args[0], err)
		}
		owner = key
	} else {
		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return nil, errors.Wrap(errors.ErrState, err.Error())
		}
		owner = key.PublicKey()
	}

	mintA, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	mintB, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}

	opts := dex.Options{}
	put := func(key string, v interface{}) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		opts[key] = raw
		return nil
	}
	conf := map[string]interface{}{
		"token": token.Configuration{HoldingDeposit: defaultHoldingDeposit},
		"offer": offer.Configuration{RecordDeposit: defaultRecordDeposit},
	}
	gen := token.Genesis{
		Mints: []token.GenesisMint{
			{Address: mintA.PublicKey(), Decimals: 6},
			{Address: mintB.PublicKey(), Decimals: 9},
		},
		Holdings: []token.GenesisHolding{
			{Owner: owner, Mint: mintA.PublicKey(), Amount: defaultBalance},
			{Owner: owner, Mint: mintB.PublicKey(), Amount: defaultBalance},
		},
	}
	accounts := []rent.Account{{Owner: owner, Lamports: defaultLamports}}

	if err := put("conf", conf); err != nil {
		return nil, err
	}
	if err := put("token", gen); err != nil {
		return nil, err
	}
	if err := put("rent", accounts); err != nil {
		return nil, err
	}
	return json.Marshal(opts)
}
