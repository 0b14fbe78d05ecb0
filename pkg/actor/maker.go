package actor

import (
	"fmt"

	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/smartcontract"
	"github.com/R3E-Network/neo-sdk-go/pkg/smartcontract/callflag"
	"github.com/R3E-Network/neo-sdk-go/pkg/transaction"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/emit"
)

// MakeCall creates a transaction that calls the given method of the given
// contract with the given parameters. Parameters are expanded the same way
// smartcontract.Parameter values are, the call uses the All flag. The
// transaction is signed and ready to be sent.
func (a *Actor) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	script, err := makeScript(contract, method, params...)
	if err != nil {
		return nil, err
	}
	return a.MakeTransaction(script)
}

// MakeUnsignedCall is like MakeCall, but returns the unsigned transaction.
func (a *Actor) MakeUnsignedCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	script, err := makeScript(contract, method, params...)
	if err != nil {
		return nil, err
	}
	return a.MakeUnsignedTransaction(script)
}

func makeScript(contract util.Uint160, method string, params ...any) ([]byte, error) {
	for i := range params {
		if p, ok := params[i].(smartcontract.Parameter); ok {
			exp, err := smartcontract.ExpandParameterToEmitable(p)
			if err != nil {
				return nil, fmt.Errorf("param %d: %w", i, err)
			}
			params[i] = exp
		}
	}
	b := io.NewBufBinWriter()
	emit.AppCall(b.BinWriter, contract, method, callflag.All, params...)
	if b.Err != nil {
		return nil, fmt.Errorf("failed to create invocation script: %w", b.Err)
	}
	return b.Bytes(), nil
}

// invocationScript returns an invocation script pushing the given
// signature.
func invocationScript(sig []byte) []byte {
	b := io.NewBufBinWriter()
	emit.Bytes(b.BinWriter, sig)
	return b.Bytes()
}
