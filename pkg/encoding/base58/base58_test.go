package base58

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	b58 := "1F8tG"
	b, err := Decode(b58)
	require.NoError(t, err)
	assert.Equal(t, b58, Encode(b))
}

func TestCheckEncodeDecode(t *testing.T) {
	b58 := "tzeeve"
	b, err := CheckDecode(b58)
	require.NoError(t, err)
	assert.Equal(t, b58, CheckEncode(b))
}

func TestCheckDecodeFailures(t *testing.T) {
	badbase58 := "BASE%*"
	_, err := CheckDecode(badbase58)
	require.ErrorIs(t, err, ErrBadChecksum)

	shortbase58 := "THqY"
	_, err = CheckDecode(shortbase58)
	require.ErrorIs(t, err, ErrBadChecksum)

	// A valid checksummed payload with its last character flipped.
	good := CheckEncode([]byte{0x17, 0xde, 0xad, 0xbe, 0xef})
	bad := good[:len(good)-1] + "1"
	if bad == good {
		bad = good[:len(good)-1] + "2"
	}
	_, err = CheckDecode(bad)
	require.ErrorIs(t, err, ErrBadChecksum)
}

func TestCheckEncodeKnown(t *testing.T) {
	// The checked payload is version 0x00 + hash160, the classic
	// base58check construction.
	payload, err := hex.DecodeString("0065a16059864a2fdbc7c99a4723a8395bc6f188eb")
	require.NoError(t, err)
	require.Equal(t, "1AGNa15ZQXAZUgFiqJ2i7Z2DPU2J6hW62i", CheckEncode(payload))
}
