// Package wallet provides a minimal account model backing transaction
// signers. An account either wraps a private key with its standard
// signature contract or describes a contract-based witness (with its
// parameters and deployment status) that is signed elsewhere.
package wallet

import (
	"errors"

	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/hash"
	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/keys"
	"github.com/R3E-Network/neo-sdk-go/pkg/encoding/address"
	"github.com/R3E-Network/neo-sdk-go/pkg/smartcontract"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
)

// ErrNoKey is returned when a signing operation is requested from an
// account that has no private key.
var ErrNoKey = errors.New("account has no key")

// Account represents a NEO account. It holds key pair and optional contract
// information.
type Account struct {
	privateKey *keys.PrivateKey

	// NEO address.
	Address string `json:"address"`

	// Contract is the contract this account belongs to (nil for watch-only
	// accounts).
	Contract *Contract `json:"contract,omitempty"`
}

// Contract represents a subset of the smartcontract to embed in the
// Account so it's NEP-6 compliant.
type Contract struct {
	// Script of the contract deployed on the blockchain.
	Script []byte `json:"script"`

	// A list of parameters used deploying this contract.
	Parameters []ContractParam `json:"parameters"`

	// Indicates whether the contract has been deployed to the blockchain.
	Deployed bool `json:"deployed"`
}

// ContractParam is a descriptor of a contract parameter containing type and
// optional name.
type ContractParam struct {
	Name string                  `json:"name"`
	Type smartcontract.ParamType `json:"type"`
}

// NewAccount creates a new Account with a random generated PrivateKey.
func NewAccount() (*Account, error) {
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(priv), nil
}

// NewAccountFromWIF creates a new Account from the provided WIF.
func NewAccountFromWIF(wif string) (*Account, error) {
	privKey, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(privKey), nil
}

// NewAccountFromEncryptedWIF creates a new Account from the provided
// NEP-2 encrypted WIF and password.
func NewAccountFromEncryptedWIF(wif string, pass string, scrypt keys.ScryptParams) (*Account, error) {
	priv, err := keys.NEP2Decrypt(wif, pass, scrypt)
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(priv), nil
}

// NewAccountFromPrivateKey creates a wallet from the given PrivateKey.
func NewAccountFromPrivateKey(p *keys.PrivateKey) *Account {
	pubKey := p.PublicKey()

	return &Account{
		privateKey: p,
		Address:    p.Address(),
		Contract: &Contract{
			Script: pubKey.GetVerificationScript(),
			Parameters: []ContractParam{
				{Name: "signature", Type: smartcontract.SignatureType},
			},
		},
	}
}

// NewContractAccount creates a contract account belonging to some deployed
// contract. The witness for it has an empty verification script (the
// deployed contract verifies), so only the parameter descriptors are kept.
func NewContractAccount(hash util.Uint160, paramTypes ...smartcontract.ParamType) *Account {
	params := make([]ContractParam, len(paramTypes))
	for i, t := range paramTypes {
		params[i].Type = t
	}
	return &Account{
		Address: address.Uint160ToString(hash),
		Contract: &Contract{
			Parameters: params,
			Deployed:   true,
		},
	}
}

// ScriptHash returns the script hash (account) that the Account.Address is
// derived from. It never returns an error, returning zero hash in case of
// address decoding problems.
func (a *Account) ScriptHash() util.Uint160 {
	res, _ := address.StringToUint160(a.Address)
	return res
}

// CanSign returns true when account is the simple signature one and has an
// associated decrypted private key.
func (a *Account) CanSign() bool {
	return a.privateKey != nil
}

// GetVerificationScript returns the account's verification script.
func (a *Account) GetVerificationScript() []byte {
	if a.Contract != nil {
		return a.Contract.Script
	}
	return nil
}

// PrivateKey returns private key corresponding to the account if it's
// unlocked, nil otherwise.
func (a *Account) PrivateKey() *keys.PrivateKey {
	return a.privateKey
}

// SignHashable signs the given Hashable item for the given network and
// returns the signature. An error is returned when the account has no key.
func (a *Account) SignHashable(net uint32, item hash.Hashable) ([]byte, error) {
	if a.privateKey == nil {
		return nil, ErrNoKey
	}
	return a.privateKey.SignHashable(net, item), nil
}

// Close destroys the private key of the account leaving the rest intact.
// The account can no longer sign after that.
func (a *Account) Close() {
	if a.privateKey == nil {
		return
	}
	a.privateKey.Destroy()
	a.privateKey = nil
}
