// Package actor provides a way to change chain state via RPC client.
//
// This layer builds transactions, optionally sending them to the network.
// It simplifies filling in transaction details by providing a simpler
// interface to a set of `Make*` and `Send*` methods. The RPC side of it is
// abstracted behind the RPCActor interface, so any fee-estimating and
// transaction-relaying backend can be plugged in.
package actor

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/R3E-Network/neo-sdk-go/pkg/config"
	"github.com/R3E-Network/neo-sdk-go/pkg/transaction"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/R3E-Network/neo-sdk-go/pkg/wallet"
	"go.uber.org/zap"
)

// InvokeResult is the result of a test script invocation used to estimate
// the system fee of a transaction.
type InvokeResult struct {
	// State is the VM state after the invocation, "HALT" or "FAULT".
	State string
	// GasConsumed is the amount of GAS burned by the invocation.
	GasConsumed int64
	// FaultException is the error message for the "FAULT" state.
	FaultException string
}

// RPCActor is the interface required from the RPC backend to successfully
// create and send transactions.
type RPCActor interface {
	// InvokeScript executes the given script with the given signers in a
	// test context returning the execution result.
	InvokeScript(script []byte, signers []transaction.Signer) (*InvokeResult, error)
	// CalculateNetworkFee calculates the network fee for the given
	// transaction with all witnesses attached (zeroed signatures).
	CalculateNetworkFee(tx *transaction.Transaction) (int64, error)
	// GetBlockCount returns the current chain height.
	GetBlockCount() (uint32, error)
	// SendRawTransaction relays the transaction to the network.
	SendRawTransaction(tx *transaction.Transaction) (util.Uint256, error)
}

// SignerAccount represents a combination of the transaction.Signer and the
// corresponding wallet.Account. It's used to create and sign transactions.
type SignerAccount struct {
	Signer  transaction.Signer
	Account *wallet.Account
}

// Actor keeps a connection to the RPC endpoint and allows to perform
// state-changing actions on behalf of a set of signers.
type Actor struct {
	client RPCActor
	cfg    config.ProtocolConfiguration
	log    *zap.Logger

	signers   []SignerAccount
	txSigners []transaction.Signer
}

// Option allows to customize some of the Actor's behavior.
type Option func(*Actor)

// WithLogger returns an option that makes the Actor log fee estimation
// results with the given logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Actor) {
		a.log = log
	}
}

// ErrFromState is returned for transactions that can not be created because
// the test invocation ended in a FAULT VM state.
var ErrFromState = errors.New("fault VM state")

// New creates an Actor for the given protocol configuration and signers.
// Each signer account must be able to produce a witness, that is either
// hold a key or describe a deployed contract.
func New(ra RPCActor, cfg config.ProtocolConfiguration, signers []SignerAccount, opts ...Option) (*Actor, error) {
	if len(signers) < 1 {
		return nil, errors.New("at least one signer (sender) is required")
	}
	txSigners := make([]transaction.Signer, len(signers))
	for i, s := range signers {
		if s.Account == nil {
			return nil, fmt.Errorf("signer %d has no account", i)
		}
		if !s.Account.CanSign() && (s.Account.Contract == nil || !s.Account.Contract.Deployed) {
			return nil, fmt.Errorf("signer %d is not signable", i)
		}
		if s.Account.ScriptHash() != s.Signer.Account {
			return nil, fmt.Errorf("signer %d account doesn't match its script hash", i)
		}
		txSigners[i] = s.Signer
	}
	a := &Actor{
		client:    ra,
		cfg:       cfg,
		log:       zap.NewNop(),
		signers:   signers,
		txSigners: txSigners,
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// NewSimple makes it easier to create an Actor for the most widespread
// single-signer case: CalledByEntry scope.
func NewSimple(ra RPCActor, cfg config.ProtocolConfiguration, acc *wallet.Account, opts ...Option) (*Actor, error) {
	return New(ra, cfg, []SignerAccount{{
		Signer: transaction.Signer{
			Account: acc.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: acc,
	}}, opts...)
}

// NewTuned creates an Actor with the single signer using the given scopes.
func NewTuned(ra RPCActor, cfg config.ProtocolConfiguration, acc *wallet.Account, scopes transaction.WitnessScope, opts ...Option) (*Actor, error) {
	return New(ra, cfg, []SignerAccount{{
		Signer: transaction.Signer{
			Account: acc.ScriptHash(),
			Scopes:  scopes,
		},
		Account: acc,
	}}, opts...)
}

// Sender returns the sender address that will be used for transactions
// created by this Actor. It's the account of the first signer.
func (a *Actor) Sender() util.Uint160 {
	return a.txSigners[0].Account
}

// Signers returns a copy of the transaction signers this Actor uses.
func (a *Actor) Signers() []transaction.Signer {
	res := make([]transaction.Signer, len(a.txSigners))
	for i := range a.txSigners {
		res[i] = *a.txSigners[i].Copy()
	}
	return res
}

// CalculateValidUntilBlock returns the height the transaction will still be
// valid at assuming it's accepted in the next block.
func (a *Actor) CalculateValidUntilBlock() (uint32, error) {
	blockCount, err := a.client.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("can't get block count: %w", err)
	}
	return blockCount + a.cfg.MaxValidUntilBlockIncrement, nil
}

// MakeUnsignedTransaction creates an unsigned transaction with the given
// script. The system fee is estimated via a test invocation, the network
// fee is calculated for the unsigned transaction with witnesses attached
// and both can be adjusted afterwards (the transaction is not yet hashed).
func (a *Actor) MakeUnsignedTransaction(script []byte) (*transaction.Transaction, error) {
	r, err := a.client.InvokeScript(script, a.txSigners)
	if err != nil {
		return nil, fmt.Errorf("test invocation failed: %w", err)
	}
	if r.State != "HALT" {
		return nil, fmt.Errorf("%w: %s", ErrFromState, r.FaultException)
	}
	return a.makeUnsignedWithFee(script, r.GasConsumed)
}

// MakeUnsignedUncheckedTransaction creates an unsigned transaction with the
// given script and system fee without any test invocation. Use it when the
// required system fee is known in advance or a FAULTed transaction needs to
// be created.
func (a *Actor) MakeUnsignedUncheckedTransaction(script []byte, sysFee int64) (*transaction.Transaction, error) {
	return a.makeUnsignedWithFee(script, sysFee)
}

func (a *Actor) makeUnsignedWithFee(script []byte, sysFee int64) (*transaction.Transaction, error) {
	tx := transaction.New(script, sysFee)
	tx.Nonce = rand.Uint32()
	tx.Signers = a.Signers()

	vub, err := a.CalculateValidUntilBlock()
	if err != nil {
		return nil, err
	}
	tx.ValidUntilBlock = vub

	tx.Scripts = a.witnessStubs()
	netFee, err := a.client.CalculateNetworkFee(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to add network fee: %w", err)
	}
	tx.NetworkFee = netFee
	tx.Scripts = nil

	a.log.Debug("estimated transaction fees",
		zap.Int64("sysfee", tx.SystemFee),
		zap.Int64("netfee", tx.NetworkFee),
		zap.Uint32("validuntilblock", tx.ValidUntilBlock))
	return tx, nil
}

// witnessStubs returns witnesses with verification scripts and zeroed
// invocation scripts suitable for network fee calculation.
func (a *Actor) witnessStubs() []transaction.Witness {
	stubs := make([]transaction.Witness, len(a.signers))
	for i, s := range a.signers {
		stubs[i].VerificationScript = s.Account.GetVerificationScript()
	}
	return stubs
}

// MakeTransaction is like MakeUnsignedTransaction, but also signs the
// transaction.
func (a *Actor) MakeTransaction(script []byte) (*transaction.Transaction, error) {
	tx, err := a.MakeUnsignedTransaction(script)
	if err != nil {
		return nil, err
	}
	err = a.Sign(tx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Sign adds appropriate witnesses to the transaction, in the same order the
// signers are in. Most of the time it shouldn't be used directly, prefer
// MakeTransaction or SignAndSend.
func (a *Actor) Sign(tx *transaction.Transaction) error {
	if len(tx.Signers) != len(a.signers) {
		return transaction.ErrInvalidWitnessNum
	}
	tx.Scripts = make([]transaction.Witness, len(a.signers))
	for i, s := range a.signers {
		if !s.Account.CanSign() {
			// Deployed contract witness, the chain-side verification
			// method provides the actual check.
			continue
		}
		sig, err := s.Account.SignHashable(uint32(a.cfg.Magic), tx)
		if err != nil {
			return fmt.Errorf("can't sign with signer %d: %w", i, err)
		}
		tx.Scripts[i].InvocationScript = invocationScript(sig)
		tx.Scripts[i].VerificationScript = s.Account.GetVerificationScript()
	}
	return nil
}

// SignAndSend signs the transaction, checks it against the protocol size
// limit and relays it to the network. It returns the transaction hash and
// its ValidUntilBlock on success.
func (a *Actor) SignAndSend(tx *transaction.Transaction) (util.Uint256, uint32, error) {
	err := a.Sign(tx)
	if err != nil {
		return util.Uint256{}, 0, err
	}
	return a.Send(tx)
}

// Send relays an already signed transaction checking it against the
// protocol size limit first.
func (a *Actor) Send(tx *transaction.Transaction) (util.Uint256, uint32, error) {
	if size := tx.Size(); size > a.cfg.MaxTransactionSize {
		return util.Uint256{}, 0, fmt.Errorf("transaction is too big: %d bytes (limit %d)", size, a.cfg.MaxTransactionSize)
	}
	h, err := a.client.SendRawTransaction(tx)
	return h, tx.ValidUntilBlock, err
}
