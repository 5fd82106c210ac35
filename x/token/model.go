package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/orm"
	"github.com/iov-one/dex/x"
)

const (
	// MintBucketName is where mints are stored
	MintBucketName = "mint"
	// HoldingBucketName is where holdings are stored
	HoldingBucketName = "holding"

	// MaxDecimals keeps one whole unit representable in uint64
	MaxDecimals = 18
)

// Mint describes one asset.
type Mint struct {
	Address  solana.PublicKey
	Decimals uint8
	Supply   uint64
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	if err := x.ValidateKey("address", m.Address); err != nil {
		return err
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d above %d", m.Decimals, MaxDecimals)
	}
	return nil
}

func (m *Mint) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, m.Address[:])
	e.PutUint64(2, uint64(m.Decimals))
	e.PutUint64(3, m.Supply)
	return e.Data(), nil
}

func (m *Mint) Unmarshal(raw []byte) error {
	*m = Mint{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Address, err = readKey(d)
		case 2:
			var dec uint64
			if dec, err = d.ReadUint64(); err == nil {
				if dec > MaxDecimals {
					err = errors.Wrapf(errors.ErrInput, "decimals %d", dec)
				}
				m.Decimals = uint8(dec)
			}
		case 3:
			m.Supply, err = d.ReadUint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "mint")
		}
	}
	return nil
}

// Holding is the balance of one mint kept for one owner.
type Holding struct {
	Address solana.PublicKey
	Owner   solana.PublicKey
	Mint    solana.PublicKey
	Amount  uint64
	// Deposit is the native rent paid at creation, refunded on dissolve
	Deposit uint64
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Validate() error {
	if err := x.ValidateKey("address", h.Address); err != nil {
		return err
	}
	if err := x.ValidateKey("owner", h.Owner); err != nil {
		return err
	}
	return x.ValidateKey("mint", h.Mint)
}

func (h *Holding) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, h.Address[:])
	e.PutBytes(2, h.Owner[:])
	e.PutBytes(3, h.Mint[:])
	e.PutUint64(4, h.Amount)
	e.PutUint64(5, h.Deposit)
	return e.Data(), nil
}

func (h *Holding) Unmarshal(raw []byte) error {
	*h = Holding{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			h.Address, err = readKey(d)
		case 2:
			h.Owner, err = readKey(d)
		case 3:
			h.Mint, err = readKey(d)
		case 4:
			h.Amount, err = d.ReadUint64()
		case 5:
			h.Deposit, err = d.ReadUint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "holding")
		}
	}
	return nil
}

func readKey(d *codec.Decoder) (solana.PublicKey, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return x.KeyFromBytes(b)
}

// MintBucket stores mints by address
type MintBucket struct {
	orm.ModelBucket
}

// NewMintBucket returns the bucket holding all mints
func NewMintBucket() MintBucket {
	return MintBucket{orm.NewModelBucket(MintBucketName)}
}

// Get loads the mint or returns ErrNotFound
func (b MintBucket) Get(db dex.ReadOnlyKVStore, addr solana.PublicKey) (*Mint, error) {
	var m Mint
	if err := b.One(db, addr[:], &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &m, nil
}

// Save stores the mint under its address
func (b MintBucket) Save(db dex.KVStore, m *Mint) error {
	return b.Put(db, m.Address[:], m)
}

// HoldingBucket stores holdings by address
type HoldingBucket struct {
	orm.ModelBucket
}

// NewHoldingBucket returns the bucket holding all holdings
func NewHoldingBucket() HoldingBucket {
	return HoldingBucket{orm.NewModelBucket(HoldingBucketName)}
}

// Get loads the holding or returns ErrNotFound
func (b HoldingBucket) Get(db dex.ReadOnlyKVStore, addr solana.PublicKey) (*Holding, error) {
	var h Holding
	if err := b.One(db, addr[:], &h); err != nil {
		return nil, errors.Wrapf(err, "holding %s", addr)
	}
	return &h, nil
}

// Save stores the holding under its address
func (b HoldingBucket) Save(db dex.KVStore, h *Holding) error {
	return b.Put(db, h.Address[:], h)
}
