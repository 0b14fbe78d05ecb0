// Package nef represents NEO executable format.
package nef

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/R3E-Network/neo-sdk-go/pkg/crypto/hash"
	"github.com/R3E-Network/neo-sdk-go/pkg/io"
)

// NEO Executable Format 3 (NEF3)
// +------------+-----------+------------------------------------------------------------+
// |   Field    |  Length   |                          Comment                           |
// +------------+-----------+------------------------------------------------------------+
// | Magic      | 4 bytes   | Magic header                                               |
// | Compiler   | 64 bytes  | Compiler name and version                                  |
// +------------+-----------+------------------------------------------------------------+
// | Source     | Var bytes | Source file URL.                                           |
// | Reserved   | 1 byte    | Reserved for extensions. Must be 0.                        |
// | Tokens     | Var array | List of method tokens                                      |
// | Reserved   | 2 bytes   | Reserved for extensions. Must be 0.                        |
// | Script     | Var bytes | Var bytes for the payload                                  |
// +------------+-----------+------------------------------------------------------------+
// | Checksum   | 4 bytes   | First four bytes of double SHA256 hash of the header       |
// +------------+-----------+------------------------------------------------------------+

const (
	// Magic is a magic File header constant.
	Magic uint32 = 0x3346454E
	// MaxScriptLength is the maximum allowed contract script length.
	MaxScriptLength = 512 * 1024
	// MaxSourceURLLength is the maximum allowed source URL length.
	MaxSourceURLLength = 256
	// MaxTokens is the maximum number of method tokens.
	MaxTokens = 128
	// compilerFieldSize is the length of the Compiler File header field in bytes.
	compilerFieldSize = 64
)

// File represents a compiled contract file structure according to the NEF3
// standard.
type File struct {
	Header
	Source   string        `json:"source"`
	Tokens   []MethodToken `json:"tokens"`
	Script   []byte        `json:"script"`
	Checksum uint32        `json:"checksum"`
}

// Header represents a File header.
type Header struct {
	Magic    uint32 `json:"magic"`
	Compiler string `json:"compiler"`
}

// NewFile returns a new NEF3 file with the script specified.
func NewFile(script []byte) (*File, error) {
	file := &File{
		Header: Header{
			Magic:    Magic,
			Compiler: "neo-sdk-go",
		},
		Tokens: []MethodToken{},
		Script: script,
	}
	if len(script) == 0 || len(script) > MaxScriptLength {
		return nil, fmt.Errorf("invalid script length %d, expecting (0; %d]", len(script), MaxScriptLength)
	}
	file.Checksum = file.CalculateChecksum()
	return file, nil
}

// EncodeBinary implements the io.Serializable interface.
func (h *Header) EncodeBinary(w *io.BinWriter) {
	w.WriteU32LE(h.Magic)
	if len(h.Compiler) > compilerFieldSize {
		w.Err = errors.New("invalid compiler name length")
		return
	}
	var b = make([]byte, compilerFieldSize)
	copy(b, []byte(h.Compiler))
	w.WriteBytes(b)
}

// DecodeBinary implements the io.Serializable interface.
func (h *Header) DecodeBinary(r *io.BinReader) {
	h.Magic = r.ReadU32LE()
	if r.Err == nil && h.Magic != Magic {
		r.Err = errors.New("invalid Magic")
		return
	}
	h.Compiler = r.ReadFixedString(compilerFieldSize)
}

// CalculateChecksum returns the first 4 bytes of double-SHA256(File) read as
// a big-endian number (which makes the checksum wire representation exactly
// the first four digest bytes).
func (n *File) CalculateChecksum() uint32 {
	bb, err := n.Bytes()
	if err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint32(hash.Checksum(bb[:len(bb)-4]))
}

// EncodeBinary implements the io.Serializable interface.
func (n *File) EncodeBinary(w *io.BinWriter) {
	n.Header.EncodeBinary(w)
	if len(n.Source) > MaxSourceURLLength {
		w.Err = errors.New("source url too long")
		return
	}
	w.WriteString(n.Source)
	w.WriteB(0)
	w.WriteArray(n.Tokens)
	w.WriteU16LE(0)
	w.WriteVarBytes(n.Script)
	w.WriteU32BE(n.Checksum)
}

var errInvalidReserved = errors.New("reserved bytes must be 0")

// DecodeBinary implements the io.Serializable interface.
func (n *File) DecodeBinary(r *io.BinReader) {
	n.Header.DecodeBinary(r)
	n.Source = r.ReadString(MaxSourceURLLength)
	reservedB := r.ReadB()
	if r.Err == nil && reservedB != 0 {
		r.Err = errInvalidReserved
		return
	}
	r.ReadArray(&n.Tokens, MaxTokens)
	reserved := r.ReadU16LE()
	if r.Err == nil && reserved != 0 {
		r.Err = errInvalidReserved
		return
	}
	n.Script = r.ReadVarBytes(MaxScriptLength)
	if r.Err == nil && len(n.Script) == 0 {
		r.Err = errors.New("empty script")
		return
	}
	n.Checksum = r.ReadU32BE()
	checksum := n.CalculateChecksum()
	if r.Err == nil && checksum != n.Checksum {
		r.Err = errors.New("checksum verification failure")
		return
	}
}

// Bytes returns a byte array with the serialized NEF File.
func (n File) Bytes() ([]byte, error) {
	buf := io.NewBufBinWriter()
	n.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return nil, buf.Err
	}
	return buf.Bytes(), nil
}

// FileFromBytes returns a NEF File deserialized from the given bytes.
func FileFromBytes(source []byte) (File, error) {
	result := File{}
	r := io.NewBinReaderFromBuf(source)
	result.DecodeBinary(r)
	if r.Err != nil {
		return result, r.Err
	}
	if r.Len() != 0 {
		return result, errors.New("extra data")
	}
	return result, nil
}
