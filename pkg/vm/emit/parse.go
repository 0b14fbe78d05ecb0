package emit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/R3E-Network/neo-sdk-go/pkg/encoding/bigint"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
	"github.com/R3E-Network/neo-sdk-go/pkg/vm/opcode"
)

// ErrInvalidOpcode is returned by script parsing routines when the
// instruction read doesn't match the expected kind of push.
var ErrInvalidOpcode = errors.New("invalid opcode")

// MaxPushDataSize is the maximum length of a byte string a single push
// instruction can carry.
const MaxPushDataSize = 0xFFFF * 2

// ParsePushBytes reads a single data push instruction (PUSHDATA1,
// PUSHDATA2 or PUSHDATA4) from r and returns the contents pushed. An
// optional maxSize overrides the default MaxPushDataSize limit. Parsing
// errors are stored in r.Err.
func ParsePushBytes(r *io.BinReader, maxSize ...int) []byte {
	var ms = MaxPushDataSize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}
	op := opcode.Opcode(r.ReadB())
	if r.Err != nil {
		return nil
	}
	var n int
	switch op {
	case opcode.PUSHDATA1:
		n = int(r.ReadB())
	case opcode.PUSHDATA2:
		v := r.ReadI16LE()
		if v < 0 {
			r.Err = errors.New("negative data length")
			return nil
		}
		n = int(v)
	case opcode.PUSHDATA4:
		v := r.ReadI32LE()
		if v < 0 {
			r.Err = errors.New("negative data length")
			return nil
		}
		n = int(v)
	default:
		r.Err = fmt.Errorf("%w: %s is not a data push", ErrInvalidOpcode, op)
		return nil
	}
	if r.Err != nil {
		return nil
	}
	if n > ms {
		r.Err = fmt.Errorf("pushed data exceeds %d bytes", ms)
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	if r.Err != nil {
		return nil
	}
	return b
}

// ParsePushInt reads a single integer push instruction from r and returns
// the number pushed. It handles PUSHM1, PUSH0 through PUSH16 and the
// PUSHINT8 through PUSHINT256 family. Parsing errors are stored in r.Err.
func ParsePushInt(r *io.BinReader) *big.Int {
	op := opcode.Opcode(r.ReadB())
	if r.Err != nil {
		return nil
	}
	switch {
	case op == opcode.PUSHM1:
		return big.NewInt(-1)
	case opcode.PUSH0 <= op && op <= opcode.PUSH16:
		return big.NewInt(int64(op - opcode.PUSH0))
	case opcode.PUSHINT8 <= op && op <= opcode.PUSHINT256:
		b := make([]byte, 1<<(op-opcode.PUSHINT8))
		r.ReadBytes(b)
		if r.Err != nil {
			return nil
		}
		return bigint.FromBytes(b)
	default:
		r.Err = fmt.Errorf("%w: %s is not an integer push", ErrInvalidOpcode, op)
		return nil
	}
}
