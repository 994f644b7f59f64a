package mint

import (
	"crypto/ed25519"
)

// TokenLedger is the external token ledger service the processor invokes.
// Calls happen atomically within the hosting transaction, so a failure from
// any primitive leaves no partial mutation for the processor to unwind.
//
// The ledger is the sole authority on account state: the processor validates
// and sequences, the ledger owns the arithmetic.
type TokenLedger interface {
	// MinimumBalance returns the minimum lamport balance an account of the
	// given data size must hold to persist without being reclaimed.
	MinimumBalance(size uint64) uint64

	// CreateAccount allocates the account's data buffer and assigns it to
	// the owner program, funded from the account's own lamport balance.
	CreateAccount(account *AccountRef, owner ed25519.PublicKey, size uint64) error

	// InitializeMint writes the initial mint state. A second call against
	// the same account fails with ErrAccountAlreadyInitialized.
	InitializeMint(account *AccountRef, decimals uint8, mintAuthority, freezeAuthority ed25519.PublicKey) error

	// MintTo mints amount tokens into the destination token account,
	// increasing the mint's supply. Overflow of either the supply or the
	// destination balance fails with ErrArithmeticOverflow; a frozen
	// destination fails with ErrAccountFrozen. On failure nothing changes.
	MintTo(mintAccount, dest *AccountRef, amount uint64) error
}
