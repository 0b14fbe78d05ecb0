package address

import (
	"testing"

	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160DecodeEncodeAddress(t *testing.T) {
	addrs := []string{
		"NQrEVKgpx2qEg6DpVMT5H8kFa7kc2DFgqS",
		"NYaVsrMV9GS8aaspRS4odXf1WHZdMmJiPC",
		"NWcpK2143ZjgzDYyQJhoKrodJUymHTxPzR",
	}
	for _, addr := range addrs {
		val, err := StringToUint160(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, Uint160ToString(val))
	}
}

func TestRoundTripArbitraryHash(t *testing.T) {
	u, err := util.Uint160DecodeStringBE("b28427088fcdcc5a7a5d1f1c6a3a1b1e8dc5f27a")
	require.NoError(t, err)
	s := Uint160ToString(u)
	back, err := StringToUint160(s)
	require.NoError(t, err)
	require.Equal(t, u, back)
}

func TestCorruptedChecksum(t *testing.T) {
	u := util.Uint160{1, 2, 3}
	s := Uint160ToString(u)
	bad := s[:len(s)-1] + "5"
	if bad == s {
		bad = s[:len(s)-1] + "6"
	}
	_, err := StringToUint160(bad)
	require.Error(t, err)
}

func TestUint160DecodeWrongPrefix(t *testing.T) {
	u := util.Uint160{1, 2, 3}
	s := Uint160ToStringWithPrefix(u, 0x17)
	_, err := StringToUint160(s)
	require.ErrorIs(t, err, ErrInvalidPrefix)

	back, err := StringToUint160WithPrefix(s, 0x17)
	require.NoError(t, err)
	require.Equal(t, u, back)
}

func TestUint160DecodeTooShort(t *testing.T) {
	_, err := StringToUint160("tzeeve")
	require.Error(t, err)
}
