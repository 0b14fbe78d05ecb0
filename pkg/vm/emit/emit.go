// Package emit provides convenience wrappers to build VM scripts: pushing
// data and integers, calling syscalls and contracts.
package emit

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/R3E-Network/neo-sdk-go/pkg/encoding/bigint"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/smartcontract/callflag"
	"github.com/R3E-Network/neo-sdk-go/pkg/util"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/opcode"
)

// Syscall names used by the SDK-produced scripts.
const (
	SystemContractCall        = "System.Contract.Call"
	SystemCryptoCheckSig      = "System.Crypto.CheckSig"
	SystemCryptoCheckMultisig = "System.Crypto.CheckMultisig"
)

// InteropNameToID returns an identifier of the method based on its name:
// the first 4 bytes of its SHA-256 read as a LE uint32.
func InteropNameToID(name string) uint32 {
	h := sha256.Sum256([]byte(name))
	return binary.LittleEndian.Uint32(h[:4])
}

// Instruction emits a VM Instruction with data to the given buffer.
func Instruction(w *io.BinWriter, op opcode.Opcode, b []byte) {
	w.WriteB(byte(op))
	w.WriteBytes(b)
}

// Opcodes emits a single VM Instruction without arguments to the given
// buffer, several in a row if multiple opcodes are given.
func Opcodes(w *io.BinWriter, ops ...opcode.Opcode) {
	for _, op := range ops {
		w.WriteB(byte(op))
	}
}

// Bool emits a bool type to the given buffer.
func Bool(w *io.BinWriter, ok bool) {
	if ok {
		Opcodes(w, opcode.PUSHT)
		return
	}
	Opcodes(w, opcode.PUSHF)
}

func padRight(s int, buf []byte) []byte {
	l := len(buf)
	buf = buf[:s]
	if buf[l-1]&0x80 != 0 {
		for i := l; i < s; i++ {
			buf[i] = 0xFF
		}
	}
	return buf
}

// Int emits an int type to the given buffer.
func Int(w *io.BinWriter, i int64) {
	if smallInt(w, i) {
		return
	}
	bigInt(w, big.NewInt(i))
}

// BigInt emits a big-integer type to the given buffer, it fails for values
// that don't fit into the VM's 256-bit signed representation.
func BigInt(w *io.BinWriter, n *big.Int) {
	if n.IsInt64() && smallInt(w, n.Int64()) {
		return
	}
	bigInt(w, n)
}

func smallInt(w *io.BinWriter, i int64) bool {
	switch {
	case i == -1:
		Opcodes(w, opcode.PUSHM1)
	case i >= 0 && i <= 16:
		Opcodes(w, opcode.PUSH0+opcode.Opcode(i))
	default:
		return false
	}
	return true
}

func bigInt(w *io.BinWriter, n *big.Int) {
	if w.Err != nil {
		return
	}
	buf := bigint.ToPreallocatedBytes(n, make([]byte, 0, bigint.MaxBytesLen))
	if len(buf) > bigint.MaxBytesLen {
		w.Err = errors.New("number is too big")
		return
	}
	// len != 0 because small values are emitted as one-opcode pushes.
	padSize := byte(8 - bits.LeadingZeros8(byte(len(buf)-1)))
	Opcodes(w, opcode.PUSHINT8+opcode.Opcode(padSize))
	w.WriteBytes(padRight(1<<padSize, buf))
}

// Array emits an array of elements to the given buffer. They're pushed in
// the reverse order and packed afterwards, so that the VM's array keeps
// the original one.
func Array(w *io.BinWriter, es ...any) {
	if len(es) == 0 {
		Opcodes(w, opcode.NEWARRAY0)
		return
	}
	for i := len(es) - 1; i >= 0; i-- {
		switch e := es[i].(type) {
		case []any:
			Array(w, e...)
		case int64:
			Int(w, e)
		case uint64:
			BigInt(w, new(big.Int).SetUint64(e))
		case int32:
			Int(w, int64(e))
		case uint32:
			Int(w, int64(e))
		case int16:
			Int(w, int64(e))
		case uint16:
			Int(w, int64(e))
		case int8:
			Int(w, int64(e))
		case uint8:
			Int(w, int64(e))
		case int:
			Int(w, int64(e))
		case *big.Int:
			BigInt(w, e)
		case string:
			String(w, e)
		case util.Uint160:
			Bytes(w, e.BytesBE())
		case util.Uint256:
			Bytes(w, e.BytesBE())
		case []byte:
			Bytes(w, e)
		case bool:
			Bool(w, e)
		default:
			if es[i] != nil {
				w.Err = fmt.Errorf("unsupported type: %T", e)
				return
			}
			Opcodes(w, opcode.PUSHNULL)
		}
	}
	Int(w, int64(len(es)))
	Opcodes(w, opcode.PACK)
}

// String emits a string to the given buffer.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Bytes emits a byte array to the given buffer.
func Bytes(w *io.BinWriter, b []byte) {
	var n = len(b)

	switch {
	case n < 0x100:
		Instruction(w, opcode.PUSHDATA1, []byte{byte(n)})
	case n < 0x10000:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(n))
		Instruction(w, opcode.PUSHDATA2, buf)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(n))
		Instruction(w, opcode.PUSHDATA4, buf)
	}
	w.WriteBytes(b)
}

// Syscall emits the syscall API to the given buffer.
// Syscall API string cannot be 0.
func Syscall(w *io.BinWriter, api string) {
	if w.Err != nil {
		return
	} else if len(api) == 0 {
		w.Err = errors.New("syscall api cannot be of length 0")
		return
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, InteropNameToID(api))
	Instruction(w, opcode.SYSCALL, buf)
}

// Call emits a call Instruction with the label to the given buffer.
func Call(w *io.BinWriter, op opcode.Opcode, label uint16) {
	Jmp(w, op, label)
}

// Jmp emits a jump Instruction along with the label to the given buffer.
func Jmp(w *io.BinWriter, op opcode.Opcode, label uint16) {
	if w.Err != nil {
		return
	} else if !isInstructionJmp(op) {
		w.Err = fmt.Errorf("opcode %s is not a jump or call type", op.String())
		return
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf, label)
	Instruction(w, op, buf)
}

// AppCall emits an APPCALL with the given operation, call flag and
// arguments for the given contract.
func AppCall(w *io.BinWriter, scriptHash util.Uint160, operation string, f callflag.CallFlag, args ...any) {
	Array(w, args...)
	Int(w, int64(f))
	String(w, operation)
	Bytes(w, scriptHash.BytesBE())
	Syscall(w, SystemContractCall)
}

// AppCallNoArgs is similar to AppCall but creates a script that calls a
// method without arguments.
func AppCallNoArgs(w *io.BinWriter, scriptHash util.Uint160, operation string, f callflag.CallFlag) {
	Opcodes(w, opcode.NEWARRAY0)
	Int(w, int64(f))
	String(w, operation)
	Bytes(w, scriptHash.BytesBE())
	Syscall(w, SystemContractCall)
}

func isInstructionJmp(op opcode.Opcode) bool {
	return opcode.JMP <= op && op <= opcode.CALLL || op == opcode.ENDTRYL
}
