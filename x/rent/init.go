package rent

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

const optKey = "rent"

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ dex.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts dex.Options, db dex.KVStore) error {
	var accts []Account
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i := range accts {
		has, err := bucket.Has(db, accts[i].Owner[:])
		if err != nil {
			return err
		}
		if has {
			return errors.Wrapf(errors.ErrDuplicate, "rent account %s", accts[i].Owner)
		}
		if err := bucket.Save(db, &accts[i]); err != nil {
			return errors.Wrapf(err, "rent account %d", i)
		}
	}
	return nil
}

// RegisterQuery will register this bucket as "/rent"
func RegisterQuery(qr dex.QueryRouter) {
	NewBucket().Register("rent", qr)
}
