package io

import (
	"fmt"
	"reflect"
)

// counterWriter is an io.Writer that counts bytes instead of storing them,
// it's used to compute wire sizes of Serializable values without
// allocating buffers for them.
type counterWriter struct {
	counter int
}

// Write implements the io.Writer interface.
func (cw *counterWriter) Write(p []byte) (int, error) {
	n := len(p)
	cw.counter += n
	return n, nil
}

// GetVarIntSize returns the size in number of bytes of a variable integer.
func GetVarIntSize(value int) int {
	var size int

	if value < 0xFD {
		size = 1 // byte
	} else if value <= 0xFFFF {
		size = 3 // byte + uint16
	} else if value <= 0xFFFFFFFF {
		size = 5 // byte + uint32
	} else {
		size = 9 // byte + uint64
	}
	return size
}

// GetVarStringSize returns the size of a variable string
// (reference: GetVarSize(this string value) in the C# core).
func GetVarStringSize(value string) int {
	valueSize := len([]byte(value))
	return GetVarIntSize(valueSize) + valueSize
}

// getSerializableSize returns the wire size of a Serializable value by
// encoding it into a counting writer.
func getSerializableSize(v Serializable) int {
	cw := counterWriter{}
	w := NewBinWriterFromIO(&cw)
	v.EncodeBinary(w)
	if w.Err != nil {
		panic(fmt.Sprintf("unable to encode %T for size calculation: %v", v, w.Err))
	}
	return cw.counter
}

// GetVarSize returns the wire size in bytes of a variable: a var-int for
// integers, var-int length prefix plus payload for strings and slices,
// the serialized form for Serializable values.
func GetVarSize(value any) int {
	if s, ok := value.(Serializable); ok {
		return getSerializableSize(s)
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return GetVarStringSize(v.String())
	case reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64:
		return GetVarIntSize(int(v.Int()))
	case reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64:
		return GetVarIntSize(int(v.Uint()))
	case reflect.Slice, reflect.Array:
		valueLength := v.Len()
		valueSize := 0

		if valueLength != 0 {
			switch v.Index(0).Interface().(type) {
			case Serializable:
				for i := 0; i < valueLength; i++ {
					valueSize += getSerializableSize(v.Index(i).Interface().(Serializable))
				}
			case uint8, int8:
				valueSize = valueLength
			case uint16, int16:
				valueSize = valueLength * 2
			case uint32, int32:
				valueSize = valueLength * 4
			case uint64, int64:
				valueSize = valueLength * 8
			default:
				// Elements of struct (non-pointer) slices may implement
				// Serializable with pointer receivers only.
				for i := 0; i < valueLength; i++ {
					elem, ok := v.Index(i).Addr().Interface().(Serializable)
					if !ok {
						panic(fmt.Sprintf("unable to calculate GetVarSize for %T", value))
					}
					valueSize += getSerializableSize(elem)
				}
			}
		}

		return GetVarIntSize(valueLength) + valueSize
	default:
		panic(fmt.Sprintf("unable to calculate GetVarSize, %s", reflect.TypeOf(value)))
	}
}
