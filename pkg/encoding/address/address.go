// Package address implements conversion of script hashes to and from the
// ledger's base58check address text format.
package address

import (
	"errors"

	"github.com/R3E-Network/neo-sdk-go/pkg/encoding/base58"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
)

// Prefix is the default address version byte of the N3 network. It's a
// constant, network-specific versions are passed explicitly to the
// WithPrefix functions.
const Prefix = 0x35

// ErrInvalidPrefix is returned when the decoded address version byte does
// not match the expected one.
var ErrInvalidPrefix = errors.New("invalid address prefix")

// Uint160ToString returns the "NEO address" from the given script hash
// using the default N3 address version.
func Uint160ToString(u util.Uint160) string {
	return Uint160ToStringWithPrefix(u, Prefix)
}

// Uint160ToStringWithPrefix returns the address encoding of the given
// script hash with an explicit address version byte.
func Uint160ToStringWithPrefix(u util.Uint160, prefix byte) string {
	// Address version goes first, then the hash bytes in their hash160
	// output order.
	b := append([]byte{prefix}, u.BytesBE()...)
	return base58.CheckEncode(b)
}

// StringToUint160 attempts to decode the given address string into a
// script hash, expecting the default N3 address version.
func StringToUint160(s string) (util.Uint160, error) {
	return StringToUint160WithPrefix(s, Prefix)
}

// StringToUint160WithPrefix attempts to decode the given address string
// into a script hash, expecting an explicit address version byte. A
// checksum or length failure is a hard decode failure.
func StringToUint160WithPrefix(s string, prefix byte) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	if err != nil {
		return u, err
	}
	if len(b) != util.Uint160Size+1 {
		return u, errors.New("invalid address length")
	}
	if b[0] != prefix {
		return u, ErrInvalidPrefix
	}
	return util.Uint160DecodeBytesBE(b[1:])
}
