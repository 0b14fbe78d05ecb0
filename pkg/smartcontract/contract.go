// Package smartcontract contains functions to deal with widely used scripts
// and NEO smart contract parameters.
package smartcontract

import (
	"fmt"
	"sort"

	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/keys"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/emit"
)

// MaxMultisigKeys is the maximum number of keys allowed in a multisignature
// script.
const MaxMultisigKeys = 1024

// CreateSignatureRedeemScript creates a check signature script runnable by
// the VM.
func CreateSignatureRedeemScript(key *keys.PublicKey) ([]byte, error) {
	return key.GetVerificationScript(), nil
}

// CreateMultiSigRedeemScript creates an "m out of n" type verification script
// where n is the length of publicKeys. The keys are sorted into the canonical
// ascending order before emission.
func CreateMultiSigRedeemScript(m int, publicKeys keys.PublicKeys) ([]byte, error) {
	if m < 1 {
		return nil, fmt.Errorf("param m cannot be smaller than 1, got %d", m)
	}
	if m > len(publicKeys) {
		return nil, fmt.Errorf("length of the signatures (%d) is higher then the number of public keys", m)
	}
	if m > MaxMultisigKeys {
		return nil, fmt.Errorf("public key count %d exceeds maximum of %d keys", m, MaxMultisigKeys)
	}

	buf := io.NewBufBinWriter()
	emit.Int(buf.BinWriter, int64(m))
	sorted := publicKeys.Copy()
	sort.Sort(sorted)
	for _, pubKey := range sorted {
		emit.Bytes(buf.BinWriter, pubKey.Bytes())
	}
	emit.Int(buf.BinWriter, int64(len(publicKeys)))
	emit.Syscall(buf.BinWriter, emit.SystemCryptoCheckMultisig)

	return buf.Bytes(), buf.Err
}

// CreateDefaultMultiSigRedeemScript creates an "m out of n" type verification
// script using publicKeys length with m calculated as n - (n-1)/3, the
// BFT-style majority.
func CreateDefaultMultiSigRedeemScript(publicKeys keys.PublicKeys) ([]byte, error) {
	n := len(publicKeys)
	m := GetDefaultHonestNodeCount(n)
	return CreateMultiSigRedeemScript(m, publicKeys)
}

// CreateMajorityMultiSigRedeemScript creates an "m out of n" type verification
// script using publicKeys length with m set to majority.
func CreateMajorityMultiSigRedeemScript(publicKeys keys.PublicKeys) ([]byte, error) {
	n := len(publicKeys)
	m := GetMajorityHonestNodeCount(n)
	return CreateMultiSigRedeemScript(m, publicKeys)
}

// GetDefaultHonestNodeCount returns the minimum number of honest nodes
// required for network of size n.
func GetDefaultHonestNodeCount(n int) int {
	return n - (n-1)/3
}

// GetMajorityHonestNodeCount returns the minimum number of honest nodes
// required for majority-style agreement.
func GetMajorityHonestNodeCount(n int) int {
	return n - (n-1)/2
}
