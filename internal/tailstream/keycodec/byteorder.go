// If you are AI: This file provides big-endian helpers for comparing raw integers
// outside the lexicographic storage-key path (§4.1's "byte-order helpers").

package keycodec

import "encoding/binary"

// PackBigEndian encodes x as a fixed-width big-endian byte string.
// Unlike PackFixed, this is not used in storage keys; it exists for callers that
// need a compact binary comparison key instead of the ASCII decimal form.
func PackBigEndian[U Unsigned](x U) []byte {
	switch v := any(x).(type) {
	case uint16:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, v)
		return b
	case uint32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, v)
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, v)
		return b
	default:
		panic("keycodec: unsupported unsigned type")
	}
}

// UnpackBigEndian decodes a fixed-width big-endian byte string produced by PackBigEndian.
func UnpackBigEndian[U Unsigned](b []byte) U {
	var zero U
	switch any(zero).(type) {
	case uint16:
		return U(binary.BigEndian.Uint16(b))
	case uint32:
		return U(binary.BigEndian.Uint32(b))
	case uint64:
		return U(binary.BigEndian.Uint64(b))
	default:
		panic("keycodec: unsupported unsigned type")
	}
}
