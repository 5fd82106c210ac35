package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex/errors"
)

// AssociatedAddress returns the address of the canonical holding of mint
// owned by owner. Owner may be an off curve authority.
func AssociatedAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{
			owner[:],
			solana.TokenProgramID[:],
			mint[:],
		},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(errors.ErrInput, "associated address of %s for %s: %s", owner, mint, err)
	}
	return addr, nil
}
