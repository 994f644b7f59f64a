package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, s string) (raw interface{}) {
	d := json.NewDecoder(bytes.NewBufferString(s))
	require.NoError(t, d.Decode(&raw))
	return raw
}

func TestParseTransactionError_Instruction(t *testing.T) {
	e, err := ParseTransactionError(decodeRaw(t, `{"InstructionError":[2,{"Custom":3}]}`))
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	require.NotNil(t, e.InstructionError())
	assert.Equal(t, 2, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorCustom, e.InstructionError().ErrorKey())
	require.NotNil(t, e.InstructionError().CustomError())
	assert.Equal(t, CustomError(3), *e.InstructionError().CustomError())

	e, err = ParseTransactionError(decodeRaw(t, `{"InstructionError":[0,"MissingRequiredSignature"]}`))
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	require.NotNil(t, e.InstructionError())
	assert.Equal(t, 0, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorMissingRequiredSignature, e.InstructionError().ErrorKey())
	assert.Nil(t, e.InstructionError().CustomError())
}

func TestParseTransactionError_Transaction(t *testing.T) {
	e, err := ParseTransactionError(decodeRaw(t, `"DuplicateSignature"`))
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorDuplicateSignature, e.ErrorKey())
	assert.Nil(t, e.InstructionError())
}

func TestNewTransactionError(t *testing.T) {
	e := NewTransactionError(TransactionErrorBlockhashNotFound)
	assert.Equal(t, TransactionErrorBlockhashNotFound, e.ErrorKey())
	assert.Equal(t, "BlockhashNotFound", e.Error())
}

func TestParseJSONNumber(t *testing.T) {
	tc := []interface{}{
		"1",
		1.0,
		json.Number("1"),
	}
	for i, c := range tc {
		v, err := parseJSONNumber(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, v, i)
	}
}
