// Package base58 wraps generic base58 encoder with NEO-specific checksummed
// encoding/decoding on top of it.
package base58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/hash"
	"github.com/mr-tron/base58"
)

// ErrBadChecksum is returned by CheckDecode when the embedded 4-byte
// checksum does not match the payload.
var ErrBadChecksum = errors.New("bad checksum")

// Encode encodes a byte slice to be a base58 encoded string.
func Encode(bytes []byte) string {
	return base58.Encode(bytes)
}

// Decode decodes a base58 encoded string.
func Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// CheckEncode encodes a byte slice into a base58 string with a 4-byte
// checksum appended to it.
func CheckEncode(b []byte) string {
	b = append(b, hash.Checksum(b)...)
	return Encode(b)
}

// CheckDecode decodes the given string and checks the embedded checksum,
// returning the payload without it.
func CheckDecode(s string) (b []byte, err error) {
	b, err = Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadChecksum, err)
	}

	if len(b) < 5 {
		return nil, fmt.Errorf("%w: invalid length", ErrBadChecksum)
	}

	if !bytes.Equal(hash.Checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, ErrBadChecksum
	}

	return b[:len(b)-4], nil
}
