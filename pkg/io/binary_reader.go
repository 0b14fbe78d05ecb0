package io

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
	"unicode/utf8"
)

// MaxArraySize is the maximum size of an array which can be decoded.
// It is taken from the protocol's own deserialization limit.
const MaxArraySize = 0x1000000

var (
	// ErrInvalidString is returned when a read string is not valid UTF-8.
	ErrInvalidString = errors.New("invalid UTF-8 string")
	// ErrNoMark is returned by ResetToMark when Mark was never called.
	ErrNoMark = errors.New("no mark set")
)

// BinReader is a convenient wrapper around a byte buffer and an err object.
// Used to simplify error handling when reading into a struct with many fields.
// The first encountered error is kept in Err and all subsequent reads are
// no-ops returning zero values, so a reader exhausted mid-structure always
// fails closed.
type BinReader struct {
	data []byte
	pos  int
	mark int
	Err  error
}

// NewBinReaderFromBuf makes a BinReader from the byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{data: b, mark: -1}
}

// Len returns the number of bytes left to read.
func (r *BinReader) Len() int {
	return len(r.data) - r.pos
}

// Mark saves the current read position. A subsequent ResetToMark rewinds
// the reader to it, which allows for speculative parsing.
func (r *BinReader) Mark() {
	r.mark = r.pos
}

// ResetToMark rewinds the reader to the last marked position and clears a
// previously recorded read error.
func (r *BinReader) ResetToMark() {
	if r.mark < 0 {
		r.Err = ErrNoMark
		return
	}
	r.pos = r.mark
	r.Err = nil
}

// ReadBytes copies fixed-size byte slice from the reader to provided slice.
func (r *BinReader) ReadBytes(buf []byte) {
	if r.Err != nil {
		return
	}
	if r.pos+len(buf) > len(r.data) {
		r.Err = io.EOF
		return
	}
	copy(buf, r.data[r.pos:])
	r.pos += len(buf)
}

// ReadB reads a byte.
func (r *BinReader) ReadB() byte {
	if r.Err == nil {
		if r.pos < len(r.data) {
			b := r.data[r.pos]
			r.pos++
			return b
		}
		r.Err = io.EOF
	}
	return 0
}

// ReadBool reads a boolean, any non-zero byte is decoded as true.
func (r *BinReader) ReadBool() bool {
	return r.ReadB() != 0
}

// ReadU16LE reads a little-endian encoded uint16 value.
func (r *BinReader) ReadU16LE() uint16 {
	if r.Err == nil {
		if r.pos+2 <= len(r.data) {
			v := binary.LittleEndian.Uint16(r.data[r.pos:])
			r.pos += 2
			return v
		}
		r.Err = io.EOF
	}
	return 0
}

// ReadU32LE reads a little-endian encoded uint32 value.
func (r *BinReader) ReadU32LE() uint32 {
	if r.Err == nil {
		if r.pos+4 <= len(r.data) {
			v := binary.LittleEndian.Uint32(r.data[r.pos:])
			r.pos += 4
			return v
		}
		r.Err = io.EOF
	}
	return 0
}

// ReadU64LE reads a little-endian encoded uint64 value.
func (r *BinReader) ReadU64LE() uint64 {
	if r.Err == nil {
		if r.pos+8 <= len(r.data) {
			v := binary.LittleEndian.Uint64(r.data[r.pos:])
			r.pos += 8
			return v
		}
		r.Err = io.EOF
	}
	return 0
}

// ReadU32BE reads a big-endian encoded uint32 value.
func (r *BinReader) ReadU32BE() uint32 {
	if r.Err == nil {
		if r.pos+4 <= len(r.data) {
			v := binary.BigEndian.Uint32(r.data[r.pos:])
			r.pos += 4
			return v
		}
		r.Err = io.EOF
	}
	return 0
}

// ReadI16LE reads a little-endian encoded int16 value.
func (r *BinReader) ReadI16LE() int16 {
	return int16(r.ReadU16LE())
}

// ReadI32LE reads a little-endian encoded int32 value.
func (r *BinReader) ReadI32LE() int32 {
	return int32(r.ReadU32LE())
}

// ReadI64LE reads a little-endian encoded int64 value.
func (r *BinReader) ReadI64LE() int64 {
	return int64(r.ReadU64LE())
}

// ReadVarUint reads a variable-length-encoded integer from the reader.
// Note that a non-minimal encoding of a small value is accepted, the same
// way the node's own deserializer accepts it.
func (r *BinReader) ReadVarUint() uint64 {
	if r.Err != nil {
		return 0
	}

	switch b := r.ReadB(); b {
	case 0xfd:
		return uint64(r.ReadU16LE())
	case 0xfe:
		return uint64(r.ReadU32LE())
	case 0xff:
		return r.ReadU64LE()
	default:
		return uint64(b)
	}
}

// ReadVarBytes reads the next set of bytes from the reader.
// ReadVarUint is used to determine how big that slice is.
func (r *BinReader) ReadVarBytes(maxSize ...int) []byte {
	ms := MaxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}
	n := r.ReadVarUint()
	if n > uint64(ms) {
		r.Err = fmt.Errorf("byte-slice is too big (%d)", n)
		return nil
	}
	if r.Err != nil {
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	if r.Err != nil {
		return nil
	}
	return b
}

// ReadString calls ReadVarBytes and casts the results as a string. The
// string must be valid UTF-8, trailing NUL bytes are trimmed.
func (r *BinReader) ReadString(maxSize ...int) string {
	b := r.ReadVarBytes(maxSize...)
	if r.Err != nil {
		return ""
	}
	b = bytes.TrimRight(b, "\x00")
	if !utf8.Valid(b) {
		r.Err = ErrInvalidString
		return ""
	}
	return string(b)
}

// ReadFixedString reads a fixed-size NUL-padded string (the mirror of
// BinWriter.WriteFixedString). The string must be valid UTF-8.
func (r *BinReader) ReadFixedString(size int) string {
	b := make([]byte, size)
	r.ReadBytes(b)
	if r.Err != nil {
		return ""
	}
	b = bytes.TrimRight(b, "\x00")
	if !utf8.Valid(b) {
		r.Err = ErrInvalidString
		return ""
	}
	return string(b)
}

// ReadArray reads an array into a value which must be a pointer to a slice
// of Serializable elements.
func (r *BinReader) ReadArray(t any, maxSize ...int) {
	value := reflect.ValueOf(t)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Slice {
		panic(value.Type().String() + " is not a pointer to a slice")
	}

	if r.Err != nil {
		return
	}

	sliceType := value.Elem().Type()
	elemType := sliceType.Elem()
	isPtr := elemType.Kind() == reflect.Ptr

	ms := MaxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}

	lu := r.ReadVarUint()
	if lu > uint64(ms) {
		r.Err = fmt.Errorf("array is too big (%d > %d)", lu, ms)
		return
	}
	if r.Err != nil {
		return
	}

	l := int(lu)
	arr := reflect.MakeSlice(sliceType, l, l)

	for i := 0; i < l; i++ {
		var elem reflect.Value
		if isPtr {
			elem = reflect.New(elemType.Elem())
			arr.Index(i).Set(elem)
		} else {
			elem = arr.Index(i).Addr()
		}

		el, ok := elem.Interface().(decodable)
		if !ok {
			panic(elemType.String() + " is not decodable")
		}

		el.DecodeBinary(r)
		if r.Err != nil {
			return
		}
	}

	value.Elem().Set(arr)
}
