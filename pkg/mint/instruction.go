package mint

import (
	"crypto/ed25519"
	"encoding/binary"
)

type command byte

const (
	commandInitializeMint command = iota
	commandMintTo
)

// Instruction is the closed set of operations this program processes. Only
// InitializeMint and MintTo implement it; malformed bytes are the only
// runtime decode case.
type Instruction interface {
	Encode() []byte
}

// InitializeMint configures a fresh mint account with its decimals and
// authorities. The freeze authority is optional; absence is encoded with an
// explicit presence flag rather than a zero-address sentinel.
type InitializeMint struct {
	Decimals        uint8
	MintAuthority   ed25519.PublicKey
	FreezeAuthority ed25519.PublicKey
}

func (i *InitializeMint) Encode() []byte {
	data := make([]byte, 0, 3+2*ed25519.PublicKeySize)
	data = append(data, byte(commandInitializeMint), i.Decimals)
	data = append(data, i.MintAuthority...)
	if len(i.FreezeAuthority) > 0 {
		data = append(data, 1)
		data = append(data, i.FreezeAuthority...)
	} else {
		data = append(data, 0)
	}

	return data
}

// MintTo mints new tokens into a destination token account.
type MintTo struct {
	Amount uint64
}

func (m *MintTo) Encode() []byte {
	data := make([]byte, 9)
	data[0] = byte(commandMintTo)
	binary.LittleEndian.PutUint64(data[1:], m.Amount)
	return data
}

const (
	initializeMintSize           = 2 + ed25519.PublicKeySize + 1
	initializeMintWithFreezeSize = initializeMintSize + ed25519.PublicKeySize
	mintToSize                   = 9
)

// DecodeInstruction parses raw instruction bytes into a typed variant.
//
// Short buffers, trailing bytes, unknown discriminants, and an invalid
// presence flag all fail with ErrInvalidInstructionData.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, ErrInvalidInstructionData
	}

	switch command(data[0]) {
	case commandInitializeMint:
		return decodeInitializeMint(data)
	case commandMintTo:
		if len(data) != mintToSize {
			return nil, ErrInvalidInstructionData
		}

		return &MintTo{
			Amount: binary.LittleEndian.Uint64(data[1:]),
		}, nil
	}

	return nil, ErrInvalidInstructionData
}

func decodeInitializeMint(data []byte) (*InitializeMint, error) {
	if len(data) < initializeMintSize {
		return nil, ErrInvalidInstructionData
	}

	i := &InitializeMint{
		Decimals:      data[1],
		MintAuthority: make(ed25519.PublicKey, ed25519.PublicKeySize),
	}
	copy(i.MintAuthority, data[2:])

	switch data[2+ed25519.PublicKeySize] {
	case 0:
		if len(data) != initializeMintSize {
			return nil, ErrInvalidInstructionData
		}
	case 1:
		if len(data) != initializeMintWithFreezeSize {
			return nil, ErrInvalidInstructionData
		}

		i.FreezeAuthority = make(ed25519.PublicKey, ed25519.PublicKeySize)
		copy(i.FreezeAuthority, data[2+ed25519.PublicKeySize+1:])
	default:
		return nil, ErrInvalidInstructionData
	}

	return i, nil
}
