package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"

	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // the protocol is defined with RIPEMD-160
)

// Hashable represents an object which can be hashed. Usually, these objects
// are io.Serializable and signable. They tend to cache the hash inside for
// effectiveness, providing this accessor method. Anything that can be
// identified with a hash can then be signed and verified.
type Hashable interface {
	Hash() util.Uint256
}

func getSignedData(net uint32, hh Hashable) []byte {
	var b = make([]byte, 4+32)
	binary.LittleEndian.PutUint32(b, net)
	h := hh.Hash()
	copy(b[4:], h[:])
	return b
}

// NetSha256 calculates a network-specific hash of the Hashable item that can
// then be signed/verified. It's the protocol's signable-hash rule: SHA-256
// over the network magic (LE) concatenated with the item's hash.
func NetSha256(net uint32, hh Hashable) util.Uint256 {
	return Sha256(getSignedData(net, hh))
}

// Sha256 hashes the incoming byte slice using the sha256 algorithm.
func Sha256(data []byte) util.Uint256 {
	hash := sha256.Sum256(data)
	return hash
}

// DoubleSha256 performs sha256 twice on the given data.
func DoubleSha256(data []byte) util.Uint256 {
	h1 := Sha256(data)
	return Sha256(h1.BytesBE())
}

// RipeMD160 performs the RIPEMD160 hash algorithm on the given data.
func RipeMD160(data []byte) util.Uint160 {
	hasher := ripemd160.New()
	_, _ = hasher.Write(data)

	var hash util.Uint160
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// Hash160 performs sha256 and then ripemd160 on the given data.
func Hash160(data []byte) util.Uint160 {
	h1 := Sha256(data)
	return RipeMD160(h1.BytesBE())
}

// Checksum returns the checksum for a given piece of data using DoubleSha256
// as the hash algorithm. It returns the first 4 bytes of the resulting
// slice.
func Checksum(data []byte) []byte {
	hash := DoubleSha256(data)
	return hash[:4]
}

// Sha512 hashes the incoming byte slice using the sha512 algorithm.
func Sha512(data []byte) []byte {
	hash := sha512.Sum512(data)
	return hash[:]
}

// HMACSha512 computes HMAC with sha512 over the given data using the given
// key. It's used by mnemonic-based key derivation schemes.
func HMACSha512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	_, _ = mac.Write(data)
	return mac.Sum(nil)
}
