package rent

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/orm"
	"github.com/iov-one/dex/x"
)

// BucketName is where we store the accounts
const BucketName = "rent"

// Account is the native balance of an identity.
type Account struct {
	Owner    solana.PublicKey `json:"owner"`
	Lamports uint64           `json:"lamports"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	return x.ValidateKey("owner", a.Owner)
}

func (a *Account) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, a.Owner[:])
	e.PutUint64(2, a.Lamports)
	return e.Data(), nil
}

func (a *Account) Unmarshal(raw []byte) error {
	*a = Account{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			var b []byte
			if b, err = d.ReadBytes(); err == nil {
				a.Owner, err = x.KeyFromBytes(b)
			}
		case 2:
			a.Lamports, err = d.ReadUint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "rent account")
		}
	}
	return nil
}

// Bucket stores accounts by owner
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for rent accounts
func NewBucket() Bucket {
	return Bucket{orm.NewModelBucket(BucketName)}
}

// GetOrCreate returns the stored account or an empty one
func (b Bucket) GetOrCreate(db dex.ReadOnlyKVStore, owner solana.PublicKey) (*Account, error) {
	var acc Account
	switch err := b.One(db, owner[:], &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{Owner: owner}, nil
	default:
		return nil, err
	}
}

// Save stores the account under its owner
func (b Bucket) Save(db dex.KVStore, acc *Account) error {
	return b.Put(db, acc.Owner[:], acc)
}
