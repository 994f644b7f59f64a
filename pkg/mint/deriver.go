package mint

import (
	"crypto/ed25519"

	"github.com/tokenforge/mint-server/pkg/solana"
)

// authoritySeed prefixes the seed material for the program's own derived
// mint authority.
var authoritySeed = []byte("mint-authority")

// Derive computes the deterministic program-controlled address for the given
// seed material. The bump search walks downward from 255 until the transform
// lands off-curve; identical inputs always produce the identical result.
func Derive(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return nil, 0, err
	}
	if len(addr) == 0 {
		return nil, 0, ErrNoValidBumpFound
	}

	return addr, bump, nil
}

// DeriveMintAuthority returns the PDA the program itself may mint with for
// the given mint account.
func DeriveMintAuthority(program, mintAccount ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return Derive(program, authoritySeed, mintAccount)
}
