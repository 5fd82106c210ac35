package token

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/gconf"
)

const packageName = "token"

// Configuration of the token extension
type Configuration struct {
	// HoldingDeposit is charged to the payer of every new holding
	HoldingDeposit uint64 `json:"holding_deposit"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutUint64(1, c.HoldingDeposit)
	return e.Data(), nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		if field == 1 {
			c.HoldingDeposit, err = d.ReadUint64()
		} else {
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "token configuration")
		}
	}
	return nil
}

func loadConf(db dex.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
