package sigs

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/codec"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator
type SignedTx interface {
	dex.Tx

	// GetSignBytes returns the canonical byte representation of the Msg.
	// Equivalent to dex.MustMarshal(tx.GetMsg()) if Msg has a deterministic
	// serialization.
	//
	// Helpful to store original, unparsed bytes here, just in case.
	GetSignBytes() ([]byte, error)

	// Signatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is the signature of one signer over the sign bytes of a tx.
type StdSignature struct {
	Pubkey    solana.PublicKey
	Sequence  int64
	Signature solana.Signature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if err := x.ValidateKey("pubkey", s.Pubkey); err != nil {
		return errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	if s.Signature == (solana.Signature{}) {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.PutBytes(1, s.Pubkey[:])
	e.PutUint64(2, uint64(s.Sequence))
	e.PutBytes(3, s.Signature[:])
	return e.Data(), nil
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, err := d.Field()
		if err != nil {
			return err
		}
		var b []byte
		switch field {
		case 1:
			if b, err = d.ReadBytes(); err == nil {
				s.Pubkey, err = x.KeyFromBytes(b)
			}
		case 2:
			var seq uint64
			seq, err = d.ReadUint64()
			s.Sequence = int64(seq)
		case 3:
			if b, err = d.ReadBytes(); err == nil {
				if len(b) != len(s.Signature) {
					err = errors.Wrapf(errors.ErrInput, "signature must be %d bytes", len(s.Signature))
				}
				copy(s.Signature[:], b)
			}
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "signature")
		}
	}
	return nil
}
