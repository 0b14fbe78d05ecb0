package actor

import (
	"errors"
	"testing"

	"github.com/R3E-Network/neo-sdk-go/pkg/config"
	"github.com/R3E-Network/neo-sdk-go/pkg/config/netmode"
	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/hash"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/smartcontract/callflag"
	"github.com/R3E-Network/neo-sdk-go/pkg/transaction"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/emit"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/opcode"
	"github.com/R3E-Network/neo-sdk-go/pkg/wallet"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testRPC struct {
	invokeRes  *InvokeResult
	invokeErr  error
	netFee     int64
	netFeeErr  error
	blockCount uint32
	blockErr   error
	sentTx     *transaction.Transaction
	sendErr    error

	feeTx *transaction.Transaction
}

func (r *testRPC) InvokeScript(script []byte, signers []transaction.Signer) (*InvokeResult, error) {
	return r.invokeRes, r.invokeErr
}

func (r *testRPC) CalculateNetworkFee(tx *transaction.Transaction) (int64, error) {
	r.feeTx = tx.Copy()
	return r.netFee, r.netFeeErr
}

func (r *testRPC) GetBlockCount() (uint32, error) {
	return r.blockCount, r.blockErr
}

func (r *testRPC) SendRawTransaction(tx *transaction.Transaction) (util.Uint256, error) {
	if r.sendErr != nil {
		return util.Uint256{}, r.sendErr
	}
	r.sentTx = tx
	return tx.Hash(), nil
}

func newTestRPC() *testRPC {
	return &testRPC{
		invokeRes:  &InvokeResult{State: "HALT", GasConsumed: 3},
		netFee:     42,
		blockCount: 100,
	}
}

func newTestActor(t *testing.T, rpc RPCActor) (*Actor, *wallet.Account) {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)
	a, err := NewSimple(rpc, config.Default(netmode.UnitTestNet), acc)
	require.NoError(t, err)
	return a, acc
}

func TestNew(t *testing.T) {
	rpc := newTestRPC()
	acc, err := wallet.NewAccount()
	require.NoError(t, err)
	cfg := config.Default(netmode.UnitTestNet)

	_, err = New(rpc, cfg, nil)
	require.Error(t, err)

	_, err = New(rpc, cfg, []SignerAccount{{
		Signer: transaction.Signer{Account: acc.ScriptHash()},
	}})
	require.Error(t, err)

	// Signer account not matching the account's script hash.
	_, err = New(rpc, cfg, []SignerAccount{{
		Signer:  transaction.Signer{Account: util.Uint160{1, 2, 3}},
		Account: acc,
	}})
	require.Error(t, err)

	// Non-deployed contract account can't sign.
	badAcc := &wallet.Account{Contract: &wallet.Contract{}}
	_, err = New(rpc, cfg, []SignerAccount{{
		Signer:  transaction.Signer{Account: badAcc.ScriptHash()},
		Account: badAcc,
	}})
	require.Error(t, err)

	a, err := New(rpc, cfg, []SignerAccount{{
		Signer: transaction.Signer{
			Account: acc.ScriptHash(),
			Scopes:  transaction.Global,
		},
		Account: acc,
	}}, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	require.Equal(t, acc.ScriptHash(), a.Sender())
	require.Equal(t, transaction.Global, a.Signers()[0].Scopes)
}

func TestMakeUnsignedTransaction(t *testing.T) {
	rpc := newTestRPC()
	a, acc := newTestActor(t, rpc)

	script := []byte{byte(opcode.PUSH1)}
	tx, err := a.MakeUnsignedTransaction(script)
	require.NoError(t, err)
	require.Equal(t, script, tx.Script)
	require.Equal(t, int64(3), tx.SystemFee)
	require.Equal(t, int64(42), tx.NetworkFee)
	require.Equal(t, uint32(100)+config.DefaultMaxValidUntilBlockIncrement, tx.ValidUntilBlock)
	require.Equal(t, []transaction.Signer{{
		Account: acc.ScriptHash(),
		Scopes:  transaction.CalledByEntry,
	}}, tx.Signers)
	require.Empty(t, tx.Scripts)

	// Network fee estimation saw the verification script stub.
	require.Len(t, rpc.feeTx.Scripts, 1)
	require.Equal(t, acc.Contract.Script, rpc.feeTx.Scripts[0].VerificationScript)

	t.Run("fault state", func(t *testing.T) {
		rpc.invokeRes = &InvokeResult{State: "FAULT", FaultException: "oops"}
		_, err := a.MakeUnsignedTransaction(script)
		require.ErrorIs(t, err, ErrFromState)

		// Unchecked construction ignores the VM state.
		tx, err := a.MakeUnsignedUncheckedTransaction(script, 7)
		require.NoError(t, err)
		require.Equal(t, int64(7), tx.SystemFee)
	})
	t.Run("RPC errors", func(t *testing.T) {
		rpc := newTestRPC()
		a, _ := newTestActor(t, rpc)
		rpc.invokeErr = errors.New("nope")
		_, err := a.MakeUnsignedTransaction(script)
		require.Error(t, err)

		rpc.invokeErr = nil
		rpc.blockErr = errors.New("nope")
		_, err = a.MakeUnsignedTransaction(script)
		require.Error(t, err)

		rpc.blockErr = nil
		rpc.netFeeErr = errors.New("nope")
		_, err = a.MakeUnsignedTransaction(script)
		require.Error(t, err)
	})
}

func TestSign(t *testing.T) {
	rpc := newTestRPC()
	a, acc := newTestActor(t, rpc)

	tx, err := a.MakeTransaction([]byte{byte(opcode.PUSH1)})
	require.NoError(t, err)
	require.Len(t, tx.Scripts, 1)
	require.Equal(t, acc.Contract.Script, tx.Scripts[0].VerificationScript)

	// Invocation script is a single signature push.
	inv := tx.Scripts[0].InvocationScript
	require.Len(t, inv, 66)
	require.Equal(t, byte(opcode.PUSHDATA1), inv[0])
	require.Equal(t, byte(64), inv[1])

	sig := inv[2:]
	require.True(t, acc.PrivateKey().PublicKey().VerifyHashable(sig, uint32(netmode.UnitTestNet), tx))

	t.Run("signer count mismatch", func(t *testing.T) {
		bad := tx.Copy()
		bad.Signers = append(bad.Signers, transaction.Signer{Account: util.Uint160{1}})
		require.ErrorIs(t, a.Sign(bad), transaction.ErrInvalidWitnessNum)
	})
}

func TestSignAndSend(t *testing.T) {
	rpc := newTestRPC()
	a, _ := newTestActor(t, rpc)

	tx, err := a.MakeUnsignedTransaction([]byte{byte(opcode.PUSH1)})
	require.NoError(t, err)
	h, vub, err := a.SignAndSend(tx)
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), h)
	require.Equal(t, tx.ValidUntilBlock, vub)
	require.Equal(t, tx, rpc.sentTx)

	t.Run("send error", func(t *testing.T) {
		rpc.sendErr = errors.New("nope")
		tx, err := a.MakeUnsignedTransaction([]byte{byte(opcode.PUSH1)})
		require.NoError(t, err)
		_, _, err = a.SignAndSend(tx)
		require.Error(t, err)
	})
}

func TestSendSizeLimit(t *testing.T) {
	rpc := newTestRPC()
	acc, err := wallet.NewAccount()
	require.NoError(t, err)
	cfg := config.Default(netmode.UnitTestNet)
	cfg.MaxTransactionSize = 10
	a, err := NewSimple(rpc, cfg, acc)
	require.NoError(t, err)

	tx, err := a.MakeUnsignedTransaction([]byte{byte(opcode.PUSH1)})
	require.NoError(t, err)
	_, _, err = a.SignAndSend(tx)
	require.Error(t, err)
	require.Nil(t, rpc.sentTx)
}

func TestContractSigner(t *testing.T) {
	rpc := newTestRPC()
	keyAcc, err := wallet.NewAccount()
	require.NoError(t, err)
	contractAcc := wallet.NewContractAccount(util.Uint160{1, 2, 3})
	cfg := config.Default(netmode.UnitTestNet)

	a, err := New(rpc, cfg, []SignerAccount{{
		Signer: transaction.Signer{
			Account: keyAcc.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: keyAcc,
	}, {
		Signer: transaction.Signer{
			Account: contractAcc.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: contractAcc,
	}})
	require.NoError(t, err)

	tx, err := a.MakeTransaction([]byte{byte(opcode.PUSH1)})
	require.NoError(t, err)
	require.Len(t, tx.Scripts, 2)
	require.NotEmpty(t, tx.Scripts[0].InvocationScript)
	require.Empty(t, tx.Scripts[1].InvocationScript)
	require.Empty(t, tx.Scripts[1].VerificationScript)
}

func TestMakeCall(t *testing.T) {
	rpc := newTestRPC()
	a, _ := newTestActor(t, rpc)

	contract := util.Uint160{1, 2, 3}
	tx, err := a.MakeCall(contract, "transfer", 1, "neo")
	require.NoError(t, err)

	expected := io.NewBufBinWriter()
	emit.AppCall(expected.BinWriter, contract, "transfer", callflag.All, 1, "neo")
	require.NoError(t, expected.Err)
	require.Equal(t, expected.Bytes(), tx.Script)

	_, err = a.MakeCall(contract, "transfer", struct{}{})
	require.Error(t, err)
}

func TestHashableSignCompat(t *testing.T) {
	// The signed digest must follow the network-magic rule.
	rpc := newTestRPC()
	a, acc := newTestActor(t, rpc)
	tx, err := a.MakeTransaction([]byte{byte(opcode.PUSH1)})
	require.NoError(t, err)

	digest := hash.NetSha256(uint32(netmode.UnitTestNet), tx)
	sig := tx.Scripts[0].InvocationScript[2:]
	require.True(t, acc.PrivateKey().PublicKey().Verify(sig, digest.BytesBE()))
}
