package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex"
	"github.com/iov-one/dex/errors"
)

// SignCodeV1 prefixes every digest of the current signing format.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and returns the signers
// in order. An unsigned tx gives an empty list.
func VerifyTxSignatures(db dex.KVStore, tx SignedTx, chainID string) ([]solana.PublicKey, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	all := tx.GetSignatures()
	signers := make([]solana.PublicKey, 0, len(all))
	for i, sig := range all {
		signer, err := VerifySignature(db, sig, signBytes, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature verifies sig over signBytes and consumes the sequence of
// the signer.
func VerifySignature(db dex.KVStore, sig *StdSignature, signBytes []byte, chainID string) (solana.PublicKey, error) {
	var none solana.PublicKey
	if err := sig.Validate(); err != nil {
		return none, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return none, err
	}
	if !sig.Signature.Verify(sig.Pubkey, digest) {
		return none, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	bucket := NewBucket()
	user, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return none, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return none, err
	}
	if err := bucket.Save(db, user); err != nil {
		return none, err
	}
	return sig.Pubkey, nil
}

// BuildSignBytes returns the sha512 digest signed for a tx at sequence seq:
//
//	SignCodeV1 (4) | len(chainID) (1) | chainID | seq big endian (8) | signBytes
//
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !dex.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	h.Write(nonce[:])
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx
func SignTx(signer solana.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// NextSequence returns the sequence the key must sign with next.
func NextSequence(db dex.ReadOnlyKVStore, key solana.PublicKey) (int64, error) {
	user, err := NewBucket().GetOrCreate(db, key)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
