package offer

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x"
)

const (
	pathMakeOfferMsg = "offer/make"
	pathTakeOfferMsg = "offer/take"
)

// MakeOfferMsg opens an offer of AmountAOffered of MintA in exchange for
// AmountBWanted of MintB.
type MakeOfferMsg struct {
	Maker          solana.PublicKey
	ID             uint64
	MintA          solana.PublicKey
	MintB          solana.PublicKey
	AmountAOffered uint64
	AmountBWanted  uint64
	// MakerHoldingA is the funding holding. The associated holding of
	// the maker is used if zero.
	MakerHoldingA solana.PublicKey
}

var _ dex.Msg = (*MakeOfferMsg)(nil)

func (MakeOfferMsg) Path() string {
	return pathMakeOfferMsg
}

func (m *MakeOfferMsg) Validate() error {
	if err := x.ValidateKey("maker", m.Maker); err != nil {
		return err
	}
	if err := x.ValidateKey("mint_a", m.MintA); err != nil {
		return err
	}
	if err := x.ValidateKey("mint_b", m.MintB); err != nil {
		return err
	}
	if m.AmountAOffered == 0 {
		return errors.Wrap(errors.ErrAmount, "offered amount must be positive")
	}
	if m.AmountBWanted == 0 {
		return errors.Wrap(errors.ErrAmount, "wanted amount must be positive")
	}
	return nil
}

func (m *MakeOfferMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, m.Maker[:])
	e.PutUint64(2, m.ID)
	e.PutBytes(3, m.MintA[:])
	e.PutBytes(4, m.MintB[:])
	e.PutUint64(5, m.AmountAOffered)
	e.PutUint64(6, m.AmountBWanted)
	if !m.MakerHoldingA.IsZero() {
		e.PutBytes(7, m.MakerHoldingA[:])
	}
	return e.Data(), nil
}

func (m *MakeOfferMsg) Unmarshal(raw []byte) error {
	*m = MakeOfferMsg{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Maker, err = readKey(d)
		case 2:
			m.ID, err = d.ReadUint64()
		case 3:
			m.MintA, err = readKey(d)
		case 4:
			m.MintB, err = readKey(d)
		case 5:
			m.AmountAOffered, err = d.ReadUint64()
		case 6:
			m.AmountBWanted, err = d.ReadUint64()
		case 7:
			m.MakerHoldingA, err = readKey(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "make offer msg")
		}
	}
	return nil
}

// TakeOfferMsg closes the offer (Maker, ID). The taker names the offer
// accounts it expects, all of which are checked against the record.
type TakeOfferMsg struct {
	Taker          solana.PublicKey
	Maker          solana.PublicKey
	ID             uint64
	MintA          solana.PublicKey
	MintB          solana.PublicKey
	OfferAuthority solana.PublicKey
	Vault          solana.PublicKey
	// TakerHoldingB pays the maker. The associated holding of the taker
	// is used if zero.
	TakerHoldingB solana.PublicKey
}

var _ dex.Msg = (*TakeOfferMsg)(nil)

func (TakeOfferMsg) Path() string {
	return pathTakeOfferMsg
}

func (m *TakeOfferMsg) Validate() error {
	keys := []struct {
		name string
		key  solana.PublicKey
	}{
		{"taker", m.Taker},
		{"maker", m.Maker},
		{"mint_a", m.MintA},
		{"mint_b", m.MintB},
		{"offer_authority", m.OfferAuthority},
		{"vault", m.Vault},
	}
	for _, k := range keys {
		if err := x.ValidateKey(k.name, k.key); err != nil {
			return err
		}
	}
	return nil
}

func (m *TakeOfferMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, m.Taker[:])
	e.PutBytes(2, m.Maker[:])
	e.PutUint64(3, m.ID)
	e.PutBytes(4, m.MintA[:])
	e.PutBytes(5, m.MintB[:])
	e.PutBytes(6, m.OfferAuthority[:])
	e.PutBytes(7, m.Vault[:])
	if !m.TakerHoldingB.IsZero() {
		e.PutBytes(8, m.TakerHoldingB[:])
	}
	return e.Data(), nil
}

func (m *TakeOfferMsg) Unmarshal(raw []byte) error {
	*m = TakeOfferMsg{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Taker, err = readKey(d)
		case 2:
			m.Maker, err = readKey(d)
		case 3:
			m.ID, err = d.ReadUint64()
		case 4:
			m.MintA, err = readKey(d)
		case 5:
			m.MintB, err = readKey(d)
		case 6:
			m.OfferAuthority, err = readKey(d)
		case 7:
			m.Vault, err = readKey(d)
		case 8:
			m.TakerHoldingB, err = readKey(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "take offer msg")
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
