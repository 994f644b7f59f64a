// Package memledger is an in-memory token ledger with SPL mint and token
// account semantics. It backs the mint processor in tests and local runs.
package memledger

import (
	"crypto/ed25519"
	"math"

	"github.com/tokenforge/mint-server/pkg/mint"
	"github.com/tokenforge/mint-server/pkg/solana/token"
)

// Parameters of the rent model: accounts pay per byte-year, and an account
// holding two years' worth of rent is exempt from collection.
const (
	accountStorageOverhead = 128
	lamportsPerByteYear    = 3480
	exemptionThreshold     = 2.0
)

// Ledger implements the token ledger primitives under a single program id.
type Ledger struct {
	program ed25519.PublicKey
}

func New(program ed25519.PublicKey) *Ledger {
	return &Ledger{program: program}
}

func (l *Ledger) MinimumBalance(size uint64) uint64 {
	return uint64(float64((accountStorageOverhead+size)*lamportsPerByteYear) * exemptionThreshold)
}

func (l *Ledger) CreateAccount(account *mint.AccountRef, owner ed25519.PublicKey, size uint64) error {
	if len(account.Data) != 0 {
		return mint.ErrAccountAlreadyInitialized
	}
	if account.Lamports == nil || *account.Lamports < l.MinimumBalance(size) {
		return mint.ErrInsufficientFunding
	}

	account.Data = make([]byte, size)
	account.Owner = make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(account.Owner, owner)

	return nil
}

func (l *Ledger) InitializeMint(account *mint.AccountRef, decimals uint8, mintAuthority, freezeAuthority ed25519.PublicKey) error {
	var state token.Mint
	if !state.Unmarshal(account.Data) {
		return mint.ErrAccountNotInitialized
	}
	if state.IsInitialized {
		return mint.ErrAccountAlreadyInitialized
	}

	state = token.Mint{
		MintAuthority:   mintAuthority,
		Supply:          0,
		Decimals:        decimals,
		IsInitialized:   true,
		FreezeAuthority: freezeAuthority,
	}
	copy(account.Data, state.Marshal())

	return nil
}

// InitializeTokenAccount allocates and initializes a token account holding
// tokens of the given mint. Mirrors the ledger's InitializeAccount primitive.
func (l *Ledger) InitializeTokenAccount(account *mint.AccountRef, mintAddress, owner ed25519.PublicKey) error {
	if len(account.Data) != 0 {
		return mint.ErrAccountAlreadyInitialized
	}
	if account.Lamports == nil || *account.Lamports < l.MinimumBalance(token.AccountSize) {
		return mint.ErrInsufficientFunding
	}

	state := token.Account{
		Mint:  mintAddress,
		Owner: owner,
		State: token.AccountStateInitialized,
	}

	account.Data = make([]byte, token.AccountSize)
	copy(account.Data, state.Marshal())
	account.Owner = make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(account.Owner, l.program)

	return nil
}

func (l *Ledger) MintTo(mintAccount, dest *mint.AccountRef, amount uint64) error {
	var state token.Mint
	if !state.Unmarshal(mintAccount.Data) || !state.IsInitialized {
		return mint.ErrAccountNotInitialized
	}

	var destState token.Account
	if !destState.Unmarshal(dest.Data) || destState.State == token.AccountStateUninitialized {
		return mint.ErrAccountNotInitialized
	}
	if destState.State == token.AccountStateFrozen {
		return mint.ErrAccountFrozen
	}

	if state.Supply > math.MaxUint64-amount {
		return mint.ErrArithmeticOverflow
	}
	if destState.Amount > math.MaxUint64-amount {
		return mint.ErrArithmeticOverflow
	}

	state.Supply += amount
	destState.Amount += amount

	copy(mintAccount.Data, state.Marshal())
	copy(dest.Data, destState.Marshal())

	return nil
}
