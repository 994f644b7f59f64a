package mint

import (
	"crypto/ed25519"
)

// AccountRef is the program's view of a ledger account for the duration of
// one instruction. The lamport balance and data buffer are owned by the
// hosting runtime; the program borrows them and never retains them across
// calls.
type AccountRef struct {
	Address ed25519.PublicKey
	Owner   ed25519.PublicKey

	IsSigner   bool
	IsWritable bool

	Lamports *uint64
	Data     []byte
}
