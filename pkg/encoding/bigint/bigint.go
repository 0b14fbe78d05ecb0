// Package bigint implements the VM wire form of arbitrary-precision
// integers: little-endian two's complement byte slices.
package bigint

import (
	"math/big"

	"github.com/R3E-Network/neo-sdk-go/pkg/util/slice"
)

// MaxBytesLen is the maximum length of a serialized integer suitable for
// the VM (256-bit signed integer).
const MaxBytesLen = 32

var bigOne = big.NewInt(1)

// FromBytes converts data in little-endian two's complement format to an
// integer.
func FromBytes(data []byte) *big.Int {
	if data == nil {
		panic("nil slice provided to `FromBytes`")
	}
	if len(data) == 0 {
		return big.NewInt(0)
	}

	isNeg := data[len(data)-1]&0x80 != 0

	x := new(big.Int).SetBytes(slice.CopyReverse(data))
	if isNeg {
		x.Sub(x, new(big.Int).Lsh(bigOne, uint(8*len(data))))
	}
	return x
}

// ToBytes converts an integer to a minimal little-endian two's complement
// byte slice.
func ToBytes(n *big.Int) []byte {
	return ToPreallocatedBytes(n, []byte{})
}

// ToPreallocatedBytes converts an integer to a slice in little-endian
// two's complement format using the given byte buffer.
func ToPreallocatedBytes(n *big.Int, data []byte) []byte {
	sign := n.Sign()
	if sign == 0 {
		return data[:0]
	}

	if sign < 0 {
		l := negByteLen(n)
		x := new(big.Int).Lsh(bigOne, uint(8*l))
		x.Add(x, n)
		// For a minimal l the high byte is >= 0x80, so the BE form has
		// exactly l bytes.
		res := append(data[:0], x.Bytes()...)
		slice.Reverse(res)
		return res
	}

	res := append(data[:0], n.Bytes()...)
	slice.Reverse(res)
	if res[len(res)-1]&0x80 != 0 {
		res = append(res, 0)
	}
	return res
}

// negByteLen returns the minimal two's complement byte length for a
// negative integer, i.e. the smallest l with n >= -2^(8l-1).
func negByteLen(n *big.Int) int {
	l := (n.BitLen() + 7) / 8
	if l == 0 {
		return 0
	}
	bound := new(big.Int).Lsh(bigOne, uint(8*l-1))
	bound.Neg(bound)
	if n.Cmp(bound) < 0 {
		l++
	}
	return l
}
