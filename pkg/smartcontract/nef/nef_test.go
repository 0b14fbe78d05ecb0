package nef

import (
	"encoding/binary"
	"testing"

	"github.com/R3E-Network/neo-sdk-go/internal/testserdes"
	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/hash"
	"github.com/R3E-Network/neo-sdk-go/pkg/smartcontract/callflag"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeBinary(t *testing.T) {
	script := []byte{12, 32, 84, 35, 14}
	expected := &File{
		Header: Header{
			Magic:    Magic,
			Compiler: "the best compiler ever",
		},
		Tokens: []MethodToken{{
			Hash:       util.Uint160{1, 2, 3},
			Method:     "transfer",
			ParamCount: 4,
			HasReturn:  true,
			CallFlag:   callflag.All,
		}},
		Script: script,
	}
	expected.Checksum = expected.CalculateChecksum()
	testserdes.EncodeDecodeBinary(t, expected, &File{})

	t.Run("invalid magic", func(t *testing.T) {
		expected.Magic = 123
		checkDecodeError(t, expected)
	})

	t.Run("invalid checksum", func(t *testing.T) {
		expected.Magic = Magic
		expected.Checksum = 123
		checkDecodeError(t, expected)
	})

	t.Run("zero-length script", func(t *testing.T) {
		expected.Script = make([]byte, 0)
		expected.Checksum = expected.CalculateChecksum()
		checkDecodeError(t, expected)
	})

	t.Run("invalid script length", func(t *testing.T) {
		newScript := make([]byte, MaxScriptLength+1)
		expected.Script = newScript
		expected.Checksum = expected.CalculateChecksum()
		checkDecodeError(t, expected)
	})

	t.Run("invalid source length", func(t *testing.T) {
		expected.Script = script
		expected.Source = string(make([]byte, MaxSourceURLLength+1))
		_, err := testserdes.EncodeBinary(expected)
		require.Error(t, err)
	})
}

func checkDecodeError(t *testing.T, expected *File) {
	bytes, err := testserdes.EncodeBinary(expected)
	require.NoError(t, err)
	require.Error(t, testserdes.DecodeBinary(bytes, &File{}))
}

func TestBytesFromBytes(t *testing.T) {
	script := []byte{byte(opcode.PUSH0), byte(opcode.RET)}
	expected, err := NewFile(script)
	require.NoError(t, err)

	bytes, err := expected.Bytes()
	require.NoError(t, err)
	actual, err := FileFromBytes(bytes)
	require.NoError(t, err)
	require.Equal(t, *expected, actual)

	t.Run("extra data", func(t *testing.T) {
		_, err := FileFromBytes(append(bytes, 0x01))
		require.Error(t, err)
	})
}

func TestNewFileErrors(t *testing.T) {
	_, err := NewFile(nil)
	require.Error(t, err)

	_, err = NewFile(make([]byte, MaxScriptLength+1))
	require.Error(t, err)
}

func TestChecksumWirePlacement(t *testing.T) {
	file, err := NewFile([]byte{byte(opcode.RET)})
	require.NoError(t, err)
	bytes, err := file.Bytes()
	require.NoError(t, err)

	// The trailing four bytes are exactly the first four bytes of the
	// double SHA-256 of everything before them.
	sum := hash.Checksum(bytes[:len(bytes)-4])
	require.Equal(t, sum, bytes[len(bytes)-4:])
	require.Equal(t, file.Checksum, binary.BigEndian.Uint32(sum))
}

func TestChecksumSingleByteFlip(t *testing.T) {
	file, err := NewFile([]byte{byte(opcode.PUSH1), byte(opcode.RET)})
	require.NoError(t, err)
	bytes, err := file.Bytes()
	require.NoError(t, err)

	// Any single-byte corruption of the body must be caught by the checksum
	// (the header fields that fail earlier checks are fine too, they just
	// produce different errors).
	for i := range bytes[:len(bytes)-4] {
		corrupted := make([]byte, len(bytes))
		copy(corrupted, bytes)
		corrupted[i] ^= 0xFF
		_, err := FileFromBytes(corrupted)
		require.Error(t, err, "flipped byte %d", i)
	}
}
