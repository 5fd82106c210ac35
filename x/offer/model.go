package offer

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/orm"
	"github.com/iov-one/dex/x"
)

const (
	// BucketName is where offer records are stored
	BucketName = "offer"

	recordVersion = 1
	// RecordSize is the length of a serialized offer record
	RecordSize = 1 + 8 + 32 + 32 + 32 + 8 + 8 + 1 + 8
	// KeySize is the length of an offer key, maker followed by id
	KeySize = 32 + 8
)

// Offer is an open swap. It never changes until taken.
type Offer struct {
	ID             uint64
	Maker          solana.PublicKey
	MintA          solana.PublicKey
	MintB          solana.PublicKey
	AmountAOffered uint64
	AmountBWanted  uint64
	Bump           uint8
	// Deposit is the native rent paid by the maker for this record
	Deposit uint64
}

var _ orm.Model = (*Offer)(nil)

func (o *Offer) Validate() error {
	if err := x.ValidateKey("maker", o.Maker); err != nil {
		return err
	}
	if err := x.ValidateKey("mint_a", o.MintA); err != nil {
		return err
	}
	if err := x.ValidateKey("mint_b", o.MintB); err != nil {
		return err
	}
	if o.AmountAOffered == 0 || o.AmountBWanted == 0 {
		return errors.Wrap(errors.ErrAmount, "amounts must be positive")
	}
	return nil
}

// Marshal writes the fixed little endian layout:
// version | id | maker | mint_a | mint_b | amount_a | amount_b | bump | deposit
func (o *Offer) Marshal() ([]byte, error) {
	raw := make([]byte, RecordSize)
	raw[0] = recordVersion
	binary.LittleEndian.PutUint64(raw[1:9], o.ID)
	copy(raw[9:41], o.Maker[:])
	copy(raw[41:73], o.MintA[:])
	copy(raw[73:105], o.MintB[:])
	binary.LittleEndian.PutUint64(raw[105:113], o.AmountAOffered)
	binary.LittleEndian.PutUint64(raw[113:121], o.AmountBWanted)
	raw[121] = o.Bump
	binary.LittleEndian.PutUint64(raw[122:130], o.Deposit)
	return raw, nil
}

func (o *Offer) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrInput, "offer record must be %d bytes, got %d", RecordSize, len(raw))
	}
	if raw[0] != recordVersion {
		return errors.Wrapf(errors.ErrInput, "unknown offer record version %d", raw[0])
	}
	o.ID = binary.LittleEndian.Uint64(raw[1:9])
	copy(o.Maker[:], raw[9:41])
	copy(o.MintA[:], raw[41:73])
	copy(o.MintB[:], raw[73:105])
	o.AmountAOffered = binary.LittleEndian.Uint64(raw[105:113])
	o.AmountBWanted = binary.LittleEndian.Uint64(raw[113:121])
	o.Bump = raw[121]
	o.Deposit = binary.LittleEndian.Uint64(raw[122:130])
	return nil
}

// Key returns the storage key of the offer
func (o *Offer) Key() []byte {
	return OfferKey(o.Maker, o.ID)
}

// OfferKey is the maker followed by the big endian id, so all offers of a
// maker share a prefix and list in id order.
func OfferKey(maker solana.PublicKey, id uint64) []byte {
	key := make([]byte, KeySize)
	copy(key, maker[:])
	binary.BigEndian.PutUint64(key[32:], id)
	return key
}

// Bucket stores offer records
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for offer records
func NewBucket() Bucket {
	return Bucket{orm.NewModelBucket(BucketName)}
}

// Get returns the offer (maker, id) or ErrNotFound
func (b Bucket) Get(db dex.ReadOnlyKVStore, maker solana.PublicKey, id uint64) (*Offer, error) {
	var o Offer
	if err := b.One(db, OfferKey(maker, id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Save stores the offer under its key
func (b Bucket) Save(db dex.KVStore, o *Offer) error {
	return b.Put(db, o.Key(), o)
}

// ByMaker returns all open offers of a maker ordered by id.
func (b Bucket) ByMaker(db dex.ReadOnlyKVStore, maker solana.PublicKey) ([]*Offer, error) {
	return b.list(db, maker[:])
}

// All returns every open offer ordered by maker and id.
func (b Bucket) All(db dex.ReadOnlyKVStore) ([]*Offer, error) {
	return b.list(db, nil)
}

func (b Bucket) list(db dex.ReadOnlyKVStore, prefix []byte) ([]*Offer, error) {
	it, err := b.PrefixScan(db, prefix, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Offer
	for {
		var o Offer
		_, err := it.LoadNext(&o)
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, &o)
	}
}
