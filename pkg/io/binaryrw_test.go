package io

import (
	"bytes"
	stdio "io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock structure to test getting size of an array of serializable things.
type smthSerializable struct {
	some [42]byte
}

func (*smthSerializable) DecodeBinary(*BinReader) {}

func (ss *smthSerializable) EncodeBinary(bw *BinWriter) {
	bw.WriteBytes(ss.some[:])
}

func TestWriteU64LE(t *testing.T) {
	var (
		val     uint64 = 0xbadc0de15a11dead
		readval uint64
		bin     = []byte{0xad, 0xde, 0x11, 0x5a, 0xe1, 0x0d, 0xdc, 0xba}
	)
	bw := NewBufBinWriter()
	bw.WriteU64LE(val)
	assert.Nil(t, bw.Err)
	wrotebin := bw.Bytes()
	assert.Equal(t, wrotebin, bin)
	br := NewBinReaderFromBuf(bin)
	readval = br.ReadU64LE()
	assert.Nil(t, br.Err)
	assert.Equal(t, val, readval)
}

func TestWriteU32LE(t *testing.T) {
	var (
		val     uint32 = 0xdeadbeef
		readval uint32
		bin     = []byte{0xef, 0xbe, 0xad, 0xde}
	)
	bw := NewBufBinWriter()
	bw.WriteU32LE(val)
	assert.Nil(t, bw.Err)
	wrotebin := bw.Bytes()
	assert.Equal(t, wrotebin, bin)
	br := NewBinReaderFromBuf(bin)
	readval = br.ReadU32LE()
	assert.Nil(t, br.Err)
	assert.Equal(t, val, readval)
}

func TestWriteU32BE(t *testing.T) {
	var (
		val uint32 = 0xdeadbeef
		bin        = []byte{0xde, 0xad, 0xbe, 0xef}
	)
	bw := NewBufBinWriter()
	bw.WriteU32BE(val)
	assert.Nil(t, bw.Err)
	assert.Equal(t, bin, bw.Bytes())
	br := NewBinReaderFromBuf(bin)
	assert.Equal(t, val, br.ReadU32BE())
	assert.Nil(t, br.Err)
}

func TestBool(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteBool(true)
	bw.WriteBool(false)
	require.Equal(t, []byte{1, 0}, bw.Bytes())

	// Exact value 1 and any non-zero byte both decode as true.
	br := NewBinReaderFromBuf([]byte{0x01, 0x00, 0x23})
	require.True(t, br.ReadBool())
	require.False(t, br.ReadBool())
	require.True(t, br.ReadBool())
	require.NoError(t, br.Err)
}

func TestReadLEErrors(t *testing.T) {
	bin := []byte{0xad, 0xde, 0x11, 0x5a, 0xe1, 0x0d, 0xdc, 0xba}
	br := NewBinReaderFromBuf(bin)
	// Prime the buffer with an error.
	br.Err = stdio.ErrClosedPipe

	assert.Equal(t, uint64(0), br.ReadU64LE())
	assert.Equal(t, uint32(0), br.ReadU32LE())
	assert.Equal(t, uint16(0), br.ReadU16LE())
	assert.Equal(t, byte(0), br.ReadB())
	assert.Equal(t, false, br.ReadBool())
	assert.Error(t, br.Err)
}

func TestReadFailsClosed(t *testing.T) {
	br := NewBinReaderFromBuf([]byte{0x01, 0x02})
	_ = br.ReadU64LE()
	require.ErrorIs(t, br.Err, stdio.EOF)
	// Value reads after exhaustion keep returning zero values.
	require.Equal(t, uint32(0), br.ReadU32LE())
	require.ErrorIs(t, br.Err, stdio.EOF)
}

func TestMarkReset(t *testing.T) {
	br := NewBinReaderFromBuf([]byte{0x0a, 0x0b, 0x0c})
	require.Equal(t, byte(0x0a), br.ReadB())
	br.Mark()
	require.Equal(t, byte(0x0b), br.ReadB())
	require.Equal(t, byte(0x0c), br.ReadB())
	_ = br.ReadB()
	require.Error(t, br.Err)
	br.ResetToMark()
	require.NoError(t, br.Err)
	require.Equal(t, byte(0x0b), br.ReadB())

	br2 := NewBinReaderFromBuf([]byte{0x01})
	br2.ResetToMark()
	require.ErrorIs(t, br2.Err, ErrNoMark)
}

func TestVarUintBoundaries(t *testing.T) {
	var cases = map[uint64][]byte{
		0xfc:       {0xfc},
		0xfd:       {0xfd, 0xfd, 0x00},
		0xffff:     {0xfd, 0xff, 0xff},
		0x10000:    {0xfe, 0x00, 0x00, 0x01, 0x00},
		0xffffffff: {0xfe, 0xff, 0xff, 0xff, 0xff},
	}
	for v, expected := range cases {
		bw := NewBufBinWriter()
		bw.WriteVarUint(v)
		require.NoError(t, bw.Err)
		b := bw.Bytes()
		require.Equal(t, expected, b, "value 0x%x", v)
		require.Equal(t, len(expected), GetVarIntSize(int(v)))

		br := NewBinReaderFromBuf(b)
		require.Equal(t, v, br.ReadVarUint())
		require.NoError(t, br.Err)
	}
	bw := NewBufBinWriter()
	bw.WriteVarUint(0x100000000)
	b := bw.Bytes()
	require.Equal(t, byte(0xff), b[0])
	require.Equal(t, 9, len(b))
}

func TestVarUintNonMinimalAccepted(t *testing.T) {
	// An over-long encoding of a small value is accepted on read, matching
	// the node's deserializer.
	br := NewBinReaderFromBuf([]byte{0xfd, 0x05, 0x00})
	require.Equal(t, uint64(5), br.ReadVarUint())
	require.NoError(t, br.Err)
}

func TestBufBinWriter(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteB(1)
	require.Equal(t, 1, bw.Len())
	require.Equal(t, []byte{1}, bw.Bytes())
	require.ErrorIs(t, bw.Err, ErrDrained)
	bw.Reset()
	require.NoError(t, bw.Err)
	bw.WriteB(2)
	require.Equal(t, []byte{2}, bw.Bytes())
}

func TestWriteVarBytes(t *testing.T) {
	b := []byte{0xde, 0xad}
	bw := NewBufBinWriter()
	bw.WriteVarBytes(b)
	require.Equal(t, []byte{0x02, 0xde, 0xad}, bw.Bytes())

	br := NewBinReaderFromBuf([]byte{0x02, 0xde, 0xad})
	require.Equal(t, b, br.ReadVarBytes())
	require.NoError(t, br.Err)

	br = NewBinReaderFromBuf([]byte{0x03, 0xde, 0xad})
	_ = br.ReadVarBytes()
	require.ErrorIs(t, br.Err, stdio.EOF)

	br = NewBinReaderFromBuf([]byte{0x05, 1, 2, 3, 4, 5})
	_ = br.ReadVarBytes(4)
	require.Error(t, br.Err)
}

func TestWriteString(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteString("ab")
	require.Equal(t, []byte{0x02, 'a', 'b'}, bw.Bytes())

	br := NewBinReaderFromBuf([]byte{0x04, 'a', 'b', 0x00, 0x00})
	require.Equal(t, "ab", br.ReadString())
	require.NoError(t, br.Err)

	br = NewBinReaderFromBuf([]byte{0x02, 0xff, 0xfe})
	_ = br.ReadString()
	require.ErrorIs(t, br.Err, ErrInvalidString)
}

func TestWriteFixedString(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteFixedString("ab", 4)
	require.Equal(t, []byte{'a', 'b', 0, 0}, bw.Bytes())

	bw = NewBufBinWriter()
	bw.WriteFixedString("abcde", 4)
	require.Error(t, bw.Err)
}

func TestBinWriterArray(t *testing.T) {
	var arr [3]smthSerializable
	for i := range arr {
		arr[i].some[0] = byte(i)
	}
	expected := append([]byte{3}, arr[0].some[:]...)
	expected = append(expected, arr[1].some[:]...)
	expected = append(expected, arr[2].some[:]...)

	w := NewBufBinWriter()
	w.WriteArray(arr[:])
	require.NoError(t, w.Err)
	require.Equal(t, expected, w.Bytes())

	w.Reset()
	WriteArray(w.BinWriter, []*smthSerializable{&arr[0], &arr[1], &arr[2]})
	require.NoError(t, w.Err)
	require.Equal(t, expected, w.Bytes())
}

func TestBinReaderArray(t *testing.T) {
	data := []byte{0x02, 1, 2}
	var arr []*smthDecodable
	r := NewBinReaderFromBuf(data)
	r.ReadArray(&arr)
	require.NoError(t, r.Err)
	require.Equal(t, 2, len(arr))
	require.Equal(t, byte(1), arr[0].b)

	r = NewBinReaderFromBuf(data)
	r.ReadArray(&arr, 1)
	require.Error(t, r.Err)
}

type smthDecodable struct{ b byte }

func (s *smthDecodable) DecodeBinary(r *BinReader) { s.b = r.ReadB() }
func (s *smthDecodable) EncodeBinary(w *BinWriter) { w.WriteB(s.b) }

func TestGetVarSize(t *testing.T) {
	require.Equal(t, 1, GetVarSize(0x10))
	require.Equal(t, 3, GetVarSize(0x1000))
	require.Equal(t, GetVarStringSize("abc"), GetVarSize("abc"))
	require.Equal(t, 4, GetVarSize([]byte{1, 2, 3}))
	ss := []*smthSerializable{{}, {}}
	require.Equal(t, 1+42*2, GetVarSize(ss))
	one := &smthSerializable{}
	require.Equal(t, 42, GetVarSize(one))
}

func TestWriterToNonBuffer(t *testing.T) {
	var b bytes.Buffer
	w := NewBinWriterFromIO(&b)
	w.WriteB(7)
	w.Grow(100)
	require.NoError(t, w.Err)
	require.Equal(t, []byte{7}, b.Bytes())
}
