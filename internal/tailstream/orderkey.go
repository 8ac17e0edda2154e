// If you are AI: This file implements OrderKey, the composite (primary, secondary)
// value whose storage-key encoding is what RawListener and Publisher operate on.

package tailstream

import (
	"bytes"
	"fmt"

	"tailstream/internal/tailstream/keycodec"
)

// OrderKey is a composite (primary, secondary) pair. Total order is lexicographic:
// primary dominates, secondary breaks ties. P and S are fixed-width unsigned
// integers; their storage-key encodings are zero-padded ASCII decimal, so
// byte-wise key comparison reproduces this order (spec.md §3).
type OrderKey[P, S keycodec.Unsigned] struct {
	Primary   P
	Secondary S
}

// Compare returns -1, 0, or 1 as k is less than, equal to, or greater than other.
func (k OrderKey[P, S]) Compare(other OrderKey[P, S]) int {
	if k.Primary != other.Primary {
		if k.Primary < other.Primary {
			return -1
		}
		return 1
	}
	if k.Secondary != other.Secondary {
		if k.Secondary < other.Secondary {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether k sorts strictly before other.
func (k OrderKey[P, S]) Less(other OrderKey[P, S]) bool {
	return k.Compare(other) < 0
}

// keyPrefixes holds the pre-computed storage-key prefixes for one stream, derived
// from its name and the configured (meta_prefix, data_prefix, delimiter) per
// spec.md §6.4.
type keyPrefixes struct {
	metaKey []byte // "s" + delim + name
	dataPfx []byte // "d" + delim + name + delim
	endKey  []byte // "d" + delim + name + delim + 0xFF  -- sentinel, exclusive upper bound
	name    string
}

func newKeyPrefixes(name string, metaPrefix, dataPrefix string, delim byte) keyPrefixes {
	meta := append([]byte(metaPrefix), delim)
	meta = append(meta, name...)

	dpfx := append([]byte(dataPrefix), delim)
	dpfx = append(dpfx, name...)
	dpfx = append(dpfx, delim)

	end := append([]byte(dataPrefix), delim)
	end = append(end, name...)
	end = append(end, delim, 0xFF)

	return keyPrefixes{metaKey: meta, dataPfx: dpfx, endKey: end, name: name}
}

// ComposeStorageKey produces D(name, primary, secondary): the data key for this
// order key under the given stream prefixes and delimiter.
func (k OrderKey[P, S]) ComposeStorageKey(prefixes keyPrefixes, delim byte) []byte {
	out := make([]byte, 0, len(prefixes.dataPfx)+keycodec.Width[P]()+1+keycodec.Width[S]())
	out = append(out, prefixes.dataPfx...)
	out = append(out, keycodec.PackFixed(k.Primary)...)
	out = append(out, delim)
	out = append(out, keycodec.PackFixed(k.Secondary)...)
	return out
}

// DecomposeStorageKey parses a data key produced by ComposeStorageKey back into
// an OrderKey, failing with ErrMalformedKey on any length, prefix, delimiter, or
// digit-region mismatch.
func DecomposeStorageKey[P, S keycodec.Unsigned](storageKey []byte, prefixes keyPrefixes, delim byte) (OrderKey[P, S], error) {
	var zero OrderKey[P, S]
	wp, ws := keycodec.Width[P](), keycodec.Width[S]()
	expected := len(prefixes.dataPfx) + wp + 1 + ws
	if len(storageKey) != expected {
		return zero, fmt.Errorf("%w: expected length %d, got %d", ErrMalformedKey, expected, len(storageKey))
	}
	if !bytes.HasPrefix(storageKey, prefixes.dataPfx) {
		return zero, fmt.Errorf("%w: prefix mismatch", ErrMalformedKey)
	}
	rest := storageKey[len(prefixes.dataPfx):]
	primaryBytes := rest[:wp]
	if rest[wp] != delim {
		return zero, fmt.Errorf("%w: missing delimiter", ErrMalformedKey)
	}
	secondaryBytes := rest[wp+1:]

	primary, err := keycodec.UnpackFixed[P](primaryBytes)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	secondary, err := keycodec.UnpackFixed[S](secondaryBytes)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return OrderKey[P, S]{Primary: primary, Secondary: secondary}, nil
}
