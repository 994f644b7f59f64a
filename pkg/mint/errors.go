package mint

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidInstructionData    = errors.New("invalid instruction data")
	ErrIncorrectAccountOwner     = errors.New("incorrect account owner")
	ErrMissingRequiredSignature  = errors.New("missing required signature")
	ErrAccountAlreadyInitialized = errors.New("account already initialized")
	ErrAccountNotInitialized     = errors.New("account not initialized")
	ErrAddressDerivationMismatch = errors.New("address derivation mismatch")
	ErrArithmeticOverflow        = errors.New("arithmetic overflow")
	ErrInsufficientFunding       = errors.New("insufficient funding")

	ErrNotEnoughAccounts  = errors.New("not enough accounts")
	ErrAccountNotWritable = errors.New("account not writable")
	ErrAccountFrozen      = errors.New("account frozen")
	ErrNoValidBumpFound   = errors.New("no valid bump found")
)

// ProgramError is the numeric code surfaced to the hosting runtime when
// processing fails. Success returns no payload.
type ProgramError uint32

const (
	CodeInvalidInstructionData ProgramError = iota + 1
	CodeIncorrectAccountOwner
	CodeMissingRequiredSignature
	CodeAccountAlreadyInitialized
	CodeAccountNotInitialized
	CodeAddressDerivationMismatch
	CodeArithmeticOverflow
	CodeInsufficientFunding
	CodeNotEnoughAccounts
	CodeAccountNotWritable
	CodeAccountFrozen
	CodeNoValidBumpFound

	CodeUnknown ProgramError = 0
)

// ErrorCode maps a processing failure to its wire code.
func ErrorCode(err error) ProgramError {
	switch errors.Cause(err) {
	case ErrInvalidInstructionData:
		return CodeInvalidInstructionData
	case ErrIncorrectAccountOwner:
		return CodeIncorrectAccountOwner
	case ErrMissingRequiredSignature:
		return CodeMissingRequiredSignature
	case ErrAccountAlreadyInitialized:
		return CodeAccountAlreadyInitialized
	case ErrAccountNotInitialized:
		return CodeAccountNotInitialized
	case ErrAddressDerivationMismatch:
		return CodeAddressDerivationMismatch
	case ErrArithmeticOverflow:
		return CodeArithmeticOverflow
	case ErrInsufficientFunding:
		return CodeInsufficientFunding
	case ErrNotEnoughAccounts:
		return CodeNotEnoughAccounts
	case ErrAccountNotWritable:
		return CodeAccountNotWritable
	case ErrAccountFrozen:
		return CodeAccountFrozen
	case ErrNoValidBumpFound:
		return CodeNoValidBumpFound
	}

	return CodeUnknown
}
