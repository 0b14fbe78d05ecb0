package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Nothing more to test here, really.
func TestStringer(t *testing.T) {
	tests := map[Opcode]string{
		ADD:       "ADD",
		SUB:       "SUB",
		PUSHDATA1: "PUSHDATA1",
		THROW:     "THROW",
		JMPL:      "JMP_L",
	}

	for o, s := range tests {
		assert.Equal(t, s, o.String())
	}
	assert.Equal(t, "Opcode(66)", Opcode(0x42).String())
}

func TestIsValid(t *testing.T) {
	require.True(t, IsValid(RET))
	require.True(t, IsValid(PUSHINT8))
	require.False(t, IsValid(Opcode(0x06)))
	require.False(t, IsValid(Opcode(0xFF)))
}
