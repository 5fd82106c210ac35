package offer

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/gconf"
)

const packageName = "offer"

// Configuration of the offer extension
type Configuration struct {
	// RecordDeposit is charged to the maker for every offer record
	RecordDeposit uint64 `json:"record_deposit"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutUint64(1, c.RecordDeposit)
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
			c.RecordDeposit, err = d.ReadUint64()
		} else {
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "offer configuration")
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

// Initializer stores the offer configuration from genesis
type Initializer struct{}

var _ dex.Initializer = Initializer{}

// FromGenesis reads conf.offer
func (Initializer) FromGenesis(opts dex.Options, db dex.KVStore) error {
	return gconf.InitConfig(db, opts, packageName, &Configuration{})
}
