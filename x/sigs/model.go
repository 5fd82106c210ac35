package sigs

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/orm"
	"github.com/iov-one/dex/x"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce a javascript client can represent
// exactly: Number.MAX_SAFE_INTEGER = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData is the replay protection state of a single signer.
type UserData struct {
	Pubkey   solana.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, u.Pubkey[:])
	e.PutUint64(2, uint64(u.Sequence))
	return e.Data(), nil
}

func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
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
				u.Pubkey, err = x.KeyFromBytes(b)
			}
		case 2:
			var seq uint64
			seq, err = d.ReadUint64()
			u.Sequence = int64(seq)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "user data")
		}
	}
	return nil
}

func (u *UserData) Validate() error {
	if err := x.ValidateKey("pubkey", u.Pubkey); err != nil {
		return err
	}
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket stores UserData keyed by the public key
type Bucket struct {
	orm.ModelBucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{orm.NewModelBucket(BucketName)}
}

// GetOrCreate initializes a UserData if none exist for that key
func (b Bucket) GetOrCreate(db dex.ReadOnlyKVStore, key solana.PublicKey) (*UserData, error) {
	var user UserData
	err := b.One(db, key[:], &user)
	switch {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: key}, nil
	default:
		return nil, err
	}
}

// Save stores the user under its public key
func (b Bucket) Save(db dex.KVStore, user *UserData) error {
	return b.Put(db, user.Pubkey[:], user)
}
