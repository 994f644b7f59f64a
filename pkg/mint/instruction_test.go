package mint

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionRoundTrip(t *testing.T) {
	authority := testKey(t)
	freeze := testKey(t)

	instructions := []Instruction{
		&InitializeMint{
			Decimals:      6,
			MintAuthority: authority,
		},
		&InitializeMint{
			Decimals:        0,
			MintAuthority:   authority,
			FreezeAuthority: freeze,
		},
		&MintTo{Amount: 0},
		&MintTo{Amount: 1_000_000},
		&MintTo{Amount: ^uint64(0)},
	}

	for _, expected := range instructions {
		actual, err := DecodeInstruction(expected.Encode())
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestDecodeInstruction_Sizes(t *testing.T) {
	authority := testKey(t)

	init := (&InitializeMint{Decimals: 2, MintAuthority: authority}).Encode()
	assert.Len(t, init, 35)

	initWithFreeze := (&InitializeMint{Decimals: 2, MintAuthority: authority, FreezeAuthority: authority}).Encode()
	assert.Len(t, initWithFreeze, 67)

	mintTo := (&MintTo{Amount: 10}).Encode()
	assert.Len(t, mintTo, 9)
}

func TestDecodeInstruction_Invalid(t *testing.T) {
	authority := testKey(t)

	init := (&InitializeMint{Decimals: 2, MintAuthority: authority}).Encode()
	initWithFreeze := (&InitializeMint{Decimals: 2, MintAuthority: authority, FreezeAuthority: authority}).Encode()
	mintTo := (&MintTo{Amount: 10}).Encode()

	invalid := [][]byte{
		nil,
		{},
		{2},                        // unknown discriminant
		{255, 0, 0, 0},             // unknown discriminant
		init[:len(init)-1],         // short
		init[:5],                   // short
		append(init, 0),            // trailing garbage
		initWithFreeze[:40],        // short freeze authority
		append(initWithFreeze, 0),  // trailing garbage
		mintTo[:8],                 // short amount
		append(mintTo, 0),          // trailing garbage
		{0},                        // discriminant only
		{1},                        // discriminant only
	}

	// invalid presence flag
	badFlag := make([]byte, len(init))
	copy(badFlag, init)
	badFlag[34] = 2
	invalid = append(invalid, badFlag)

	for i, data := range invalid {
		decoded, err := DecodeInstruction(data)
		assert.Nil(t, decoded, "case %d", i)
		assert.Equal(t, ErrInvalidInstructionData, err, "case %d", i)
	}
}

func testKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
