package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x"
)

const pathTransferMsg = "token/transfer"

// TransferMsg moves value from the associated holding of the source to the
// associated holding of the destination, which is created if missing.
type TransferMsg struct {
	Source      solana.PublicKey
	Destination solana.PublicKey
	Mint        solana.PublicKey
	Amount      uint64
	Decimals    uint8
}

var _ dex.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := x.ValidateKey("source", m.Source); err != nil {
		return err
	}
	if err := x.ValidateKey("destination", m.Destination); err != nil {
		return err
	}
	if err := x.ValidateKey("mint", m.Mint); err != nil {
		return err
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d", m.Decimals)
	}
	return nil
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, m.Source[:])
	e.PutBytes(2, m.Destination[:])
	e.PutBytes(3, m.Mint[:])
	e.PutUint64(4, m.Amount)
	e.PutUint64(5, uint64(m.Decimals))
	return e.Data(), nil
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	*m = TransferMsg{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			m.Source, err = readKey(d)
		case 2:
			m.Destination, err = readKey(d)
		case 3:
			m.Mint, err = readKey(d)
		case 4:
			m.Amount, err = d.ReadUint64()
		case 5:
			var dec uint64
			if dec, err = d.ReadUint64(); err == nil {
				if dec > MaxDecimals {
					err = errors.Wrapf(errors.ErrInput, "decimals %d", dec)
				}
				m.Decimals = uint8(dec)
			}
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "transfer msg")
		}
	}
	return nil
}
