package offer

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/dex/errors"
	"github.com/iov-one/dex/x/token"
)

// ProgramID namespaces every derived authority of this extension.
var ProgramID = solana.MustPublicKeyFromBase58("99z4Bs9V4ZeZtgBQSG5EbcrH2WPYadSw4f7bbRkF83AW")

// authoritySeed is the fixed label mixed into every derivation
const authoritySeed = "offer"

// Authority is the keyless controller of one offer's vault.
type Authority struct {
	Address solana.PublicKey
	// Bump is the proof that makes Address fall off the curve
	Bump uint8
}

func authoritySeeds(maker solana.PublicKey, id uint64) [][]byte {
	idLE := make([]byte, 8)
	binary.LittleEndian.PutUint64(idLE, id)
	return [][]byte{[]byte(authoritySeed), maker[:], idLE}
}

// DeriveAuthority returns the authority of the offer (maker, id): the first
// bump from 255 down producing an address with no private key.
func DeriveAuthority(maker solana.PublicKey, id uint64) (Authority, error) {
	addr, bump, err := solana.FindProgramAddress(authoritySeeds(maker, id), ProgramID)
	if err != nil {
		return Authority{}, errors.Wrap(ErrAuthorityMismatch, err.Error())
	}
	return Authority{Address: addr, Bump: bump}, nil
}

// VerifyAuthority recomputes the authority address from a stored bump.
func VerifyAuthority(maker solana.PublicKey, id uint64, bump uint8) (solana.PublicKey, error) {
	seeds := append(authoritySeeds(maker, id), []byte{bump})
	addr, err := solana.CreateProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(ErrAuthorityMismatch, "bump %d: %s", bump, err)
	}
	return addr, nil
}

// VaultAddress is the associated holding of mint A owned by the authority.
func VaultAddress(authority, mintA solana.PublicKey) (solana.PublicKey, error) {
	return token.AssociatedAddress(authority, mintA)
}
