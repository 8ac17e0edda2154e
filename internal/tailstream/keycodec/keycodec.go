// If you are AI: This file implements fixed-width lexicographic encoding for unsigned
// integer order keys, so that byte-wise comparison of encoded keys reproduces numeric order.

// Package keycodec packs and unpacks unsigned integers as zero-padded ASCII decimal
// strings whose width is fixed per type, so lexicographic byte comparison of the
// packed form matches numeric comparison of the original value.
package keycodec

import (
	"fmt"
)

// Unsigned is the set of integer widths the engine supports as order key components.
type Unsigned interface {
	~uint16 | ~uint32 | ~uint64
}

// Width returns the number of ASCII digits used to encode U, equal to
// digits10(U) + 1 as required by the spec so the maximum value always fits.
func Width[U Unsigned]() int {
	var zero U
	switch any(zero).(type) {
	case uint16:
		return 5 // digits10(uint16)=4, +1
	case uint32:
		return 10 // digits10(uint32)=9, +1 (matches spec.md's W=10 examples)
	case uint64:
		return 20 // digits10(uint64)=19, +1
	default:
		panic("keycodec: unsupported unsigned type")
	}
}

// PackFixed renders x as Width[U]() zero-padded ASCII decimal digits.
func PackFixed[U Unsigned](x U) []byte {
	w := Width[U]()
	out := make([]byte, w)
	v := uint64(x)
	for i := w - 1; i >= 0; i-- {
		out[i] = byte('0' + v%10)
		v /= 10
	}
	return out
}

// UnpackFixed parses exactly Width[U]() ASCII decimal digits back into U.
// It fails if the input is the wrong length or contains a non-digit byte.
func UnpackFixed[U Unsigned](s []byte) (U, error) {
	w := Width[U]()
	if len(s) != w {
		return 0, fmt.Errorf("keycodec: expected %d bytes, got %d", w, len(s))
	}
	var v uint64
	for _, b := range s {
		if b < '0' || b > '9' {
			return 0, fmt.Errorf("keycodec: non-digit byte %q in fixed-width key", b)
		}
		v = v*10 + uint64(b-'0')
	}
	return U(v), nil
}
