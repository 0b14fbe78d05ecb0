package bigint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var testCases = []struct {
	number int64
	buf    []byte
}{
	{0, []byte{}},
	{1, []byte{1}},
	{-1, []byte{0xFF}},
	{2, []byte{2}},
	{127, []byte{0x7F}},
	{128, []byte{0x80, 0x00}},
	{-128, []byte{0x80}},
	{-129, []byte{0x7F, 0xFF}},
	{255, []byte{0xFF, 0x00}},
	{256, []byte{0x00, 0x01}},
	{-256, []byte{0x00, 0xFF}},
	{-257, []byte{0xFF, 0xFE}},
	{32767, []byte{0xFF, 0x7F}},
	{-32768, []byte{0x00, 0x80}},
	{65535, []byte{0xFF, 0xFF, 0x00}},
	{-65536, []byte{0x00, 0x00, 0xFF}},
}

func TestToBytes(t *testing.T) {
	for _, tc := range testCases {
		require.Equal(t, tc.buf, ToBytes(big.NewInt(tc.number)), "number: %d", tc.number)
	}
}

func TestFromBytes(t *testing.T) {
	for _, tc := range testCases {
		require.Equal(t, tc.number, FromBytes(tc.buf).Int64(), "buf: %x", tc.buf)
	}
}

func TestNonMinimalFromBytes(t *testing.T) {
	// Padded forms decode to the same value.
	require.EqualValues(t, 1, FromBytes([]byte{0x01, 0x00, 0x00}).Int64())
	require.EqualValues(t, -1, FromBytes([]byte{0xFF, 0xFF, 0xFF}).Int64())
}

func TestRoundTripRandomish(t *testing.T) {
	x, ok := new(big.Int).SetString("-9814128481947194821847129048129481294812", 10)
	require.True(t, ok)
	require.Equal(t, 0, x.Cmp(FromBytes(ToBytes(x))))
	y := new(big.Int).Neg(x)
	require.Equal(t, 0, y.Cmp(FromBytes(ToBytes(y))))
}

func TestFromBytesPanicsOnNil(t *testing.T) {
	require.Panics(t, func() { FromBytes(nil) })
}
