package mint

import (
	"bytes"
	"crypto/ed25519"

	"github.com/tokenforge/mint-server/pkg/solana/system"
	"github.com/tokenforge/mint-server/pkg/solana/token"
)

// validateInitializeMint checks the mint account before any mutation is
// attempted. The account must be writable, owned by the token ledger program
// (or freshly allocated and about to be assigned to it), not already
// initialized, and funded to at least the minimum balance for its data size.
func validateInitializeMint(account *AccountRef, ledgerProgram ed25519.PublicKey, minBalance uint64) error {
	if !account.IsWritable {
		return ErrAccountNotWritable
	}

	switch {
	case bytes.Equal(account.Owner, ledgerProgram):
	case bytes.Equal(account.Owner, system.ProgramKey[:]) && len(account.Data) == 0:
		// freshly allocated; assigned to the ledger program during processing
	default:
		return ErrIncorrectAccountOwner
	}

	if len(account.Data) > 0 {
		var state token.Mint
		if state.Unmarshal(account.Data) && state.IsInitialized {
			return ErrAccountAlreadyInitialized
		}
	}

	if account.Lamports == nil || *account.Lamports < minBalance {
		return ErrInsufficientFunding
	}

	return nil
}

// validateMintTo checks the [mint, destination, authority] triple. The
// authority must sign and match MintState.mint_authority byte-for-byte, or
// be the program's own derived authority, which is revalidated by
// recomputation rather than trusted as claimed.
func validateMintTo(program, ledgerProgram ed25519.PublicKey, mintAccount, dest, authority *AccountRef) error {
	if !mintAccount.IsWritable {
		return ErrAccountNotWritable
	}
	if !bytes.Equal(mintAccount.Owner, ledgerProgram) {
		return ErrIncorrectAccountOwner
	}

	var state token.Mint
	if !state.Unmarshal(mintAccount.Data) || !state.IsInitialized {
		return ErrAccountNotInitialized
	}

	if !dest.IsWritable {
		return ErrAccountNotWritable
	}
	if !bytes.Equal(dest.Owner, ledgerProgram) {
		return ErrIncorrectAccountOwner
	}

	var destState token.Account
	if !destState.Unmarshal(dest.Data) || destState.State == token.AccountStateUninitialized {
		return ErrAccountNotInitialized
	}
	if !bytes.Equal(destState.Mint, mintAccount.Address) {
		return ErrIncorrectAccountOwner
	}

	if authority.IsSigner {
		if !bytes.Equal(authority.Address, state.MintAuthority) {
			return ErrMissingRequiredSignature
		}

		return nil
	}

	derived, _, err := DeriveMintAuthority(program, mintAccount.Address)
	if err != nil {
		return err
	}
	if !bytes.Equal(authority.Address, derived) {
		return ErrAddressDerivationMismatch
	}
	if !bytes.Equal(derived, state.MintAuthority) {
		return ErrMissingRequiredSignature
	}

	return nil
}
