package app

import (
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x/offer"
	"github.com/iov-one/dex/x/sigs"
	"github.com/iov-one/dex/x/token"
)

// Tx is the transaction of the dex application. Exactly one message field
// must be set.
type Tx struct {
	Signatures   []*sigs.StdSignature
	MakeOfferMsg *offer.MakeOfferMsg
	TakeOfferMsg *offer.TakeOfferMsg
	TransferMsg  *token.TransferMsg
}

// make sure tx fulfills all interfaces
var _ dex.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(raw []byte) (dex.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message carried by the tx
func (tx *Tx) GetMsg() (dex.Msg, error) {
	var msgs []dex.Msg
	if tx.MakeOfferMsg != nil {
		msgs = append(msgs, tx.MakeOfferMsg)
	}
	if tx.TakeOfferMsg != nil {
		msgs = append(msgs, tx.TakeOfferMsg)
	}
	if tx.TransferMsg != nil {
		msgs = append(msgs, tx.TransferMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in one tx", len(msgs))
	}
}

// SetMsg sets the field matching the type of msg
func (tx *Tx) SetMsg(msg dex.Msg) error {
	tx.MakeOfferMsg, tx.TakeOfferMsg, tx.TransferMsg = nil, nil, nil
	switch m := msg.(type) {
	case *offer.MakeOfferMsg:
		tx.MakeOfferMsg = m
	case *offer.TakeOfferMsg:
		tx.TakeOfferMsg = m
	case *token.TransferMsg:
		tx.TransferMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignBytes returns the bytes to sign, the tx without its signatures
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}

// GetSignatures returns all signatures of the tx
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

func (tx *Tx) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	for _, s := range tx.Signatures {
		if err := e.PutMessage(1, s); err != nil {
			return nil, err
		}
	}
	if err := e.PutMessage(10, tx.MakeOfferMsg); err != nil {
		return nil, err
	}
	if err := e.PutMessage(11, tx.TakeOfferMsg); err != nil {
		return nil, err
	}
	if err := e.PutMessage(12, tx.TransferMsg); err != nil {
		return nil, err
	}
	return e.Data(), nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			var s sigs.StdSignature
			if err = d.ReadMessage(&s); err == nil {
				tx.Signatures = append(tx.Signatures, &s)
			}
		case 10:
			tx.MakeOfferMsg = new(offer.MakeOfferMsg)
			err = d.ReadMessage(tx.MakeOfferMsg)
		case 11:
			tx.TakeOfferMsg = new(offer.TakeOfferMsg)
			err = d.ReadMessage(tx.TakeOfferMsg)
		case 12:
			tx.TransferMsg = new(token.TransferMsg)
			err = d.ReadMessage(tx.TransferMsg)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "tx")
		}
	}
	return nil
}
