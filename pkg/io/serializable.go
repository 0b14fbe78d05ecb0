package io

// Serializable defines the binary encoding/decoding interface. Errors are
// returned via BinReader/BinWriter Err field.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}

type decodable interface {
	DecodeBinary(*BinReader)
}

type encodable interface {
	EncodeBinary(*BinWriter)
}

// ToByteArray serializes a without any payload-specific wrapping.
func ToByteArray(a Serializable) ([]byte, error) {
	w := NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// FromByteArray deserializes a from the given buffer, checking that it is
// fully consumed.
func FromByteArray(a Serializable, data []byte) error {
	r := NewBinReaderFromBuf(data)
	a.DecodeBinary(r)
	return r.Err
}
