// If you are AI: This file implements RawListener, the synchronous cursor
// that survives storage-iterator exhaustion by re-seeking from the last
// observed key (spec.md §4.9). Typical ordered KV engines snapshot iterators
// at creation, so tailing past the end of a snapshot means dropping and
// recreating the iterator.

package tailstream

import (
	"bytes"
	"fmt"

	"tailstream/internal/tailstream/keycodec"
)

// Decoder deserializes one entry of type E from stored bytes; RawListener then
// passes the result to the caller's handler. For polymorphic entry families,
// handler performs the tag-based dispatch itself.
type Decoder[E any] interface {
	Decode(raw []byte) (E, error)
}

// RawListener is a cursor over a stream's data keys in [begin, end) or
// [begin, ∞). It owns no storage resource beyond a lazily-created Iterator.
type RawListener[E any, P, S keycodec.Unsigned] struct {
	stream *Stream[P, S]
	decode Decoder[E]

	cursorKey       []byte
	needToAdvance   bool
	hasEnd          bool
	endKey          []byte
	reachedEnd      bool
	iter            Iterator
}

// NewRawListener constructs a listener over stream. A nil begin starts at the
// earliest possible data key; a nil end tails forever.
func NewRawListener[E any, P, S keycodec.Unsigned](stream *Stream[P, S], decode Decoder[E], begin, end *OrderKey[P, S]) *RawListener[E, P, S] {
	l := &RawListener[E, P, S]{stream: stream, decode: decode}

	if begin != nil {
		l.cursorKey = begin.ComposeStorageKey(stream.prefixes, stream.delim)
	} else {
		l.cursorKey = append([]byte(nil), stream.DataPrefix()...)
	}

	if end != nil {
		l.hasEnd = true
		l.endKey = end.ComposeStorageKey(stream.prefixes, stream.delim)
	}

	return l
}

// HasData reports whether an entry is currently available without consuming
// it. It transparently drops and recreates the underlying storage iterator
// across exhaustion, which is how tailing past the end of a snapshot works.
func (l *RawListener[E, P, S]) HasData() (bool, error) {
	if l.reachedEnd {
		return false, nil
	}

	if l.iter == nil {
		it, err := l.stream.storage.Iterator(l.cursorKey, l.stream.EndKey())
		if err != nil {
			return false, fmt.Errorf("tailstream: creating iterator for stream %q: %w", l.stream.name, err)
		}
		l.iter = it

		// cursorKey is the last key we already observed (or the range start, on
		// the very first call); a fresh iterator seeks to it inclusively, so skip
		// one entry to avoid re-yielding an already-consumed key.
		if l.needToAdvance {
			if !l.iter.Done() {
				if err := l.iter.Next(); err != nil {
					return false, err
				}
			}
			l.needToAdvance = false
		}
	}

	if l.iter.Done() {
		l.iter.Close()
		l.iter = nil
		return false, nil
	}

	if l.hasEnd && bytes.Compare(l.iter.Key(), l.endKey) >= 0 {
		l.reachedEnd = true
		l.iter.Close()
		l.iter = nil
		return false, nil
	}

	return true, nil
}

// ReachedEndOfRange reports whether a finite end bound has been reached. Only
// meaningful when the listener was constructed with a non-nil end.
func (l *RawListener[E, P, S]) ReachedEndOfRange() (bool, error) {
	if _, err := l.HasData(); err != nil {
		return false, err
	}
	return l.reachedEnd, nil
}

// ProcessCurrent decodes the current entry and passes it to handler. If no
// data is available and requireData is true, it fails with
// ErrNoDataAvailable; if requireData is false, it is a silent no-op.
func (l *RawListener[E, P, S]) ProcessCurrent(handler func(E) error, requireData bool) error {
	has, err := l.HasData()
	if err != nil {
		return err
	}
	if !has {
		if requireData {
			return ErrNoDataAvailable
		}
		return nil
	}

	l.stream.mu.Lock()
	raw := append([]byte(nil), l.iter.Value()...)
	l.stream.mu.Unlock()

	entry, err := l.decode.Decode(raw)
	if err != nil {
		return fmt.Errorf("tailstream: decoding entry for stream %q: %w", l.stream.name, err)
	}
	return handler(entry)
}

// Advance moves the cursor past the current entry. It fails with
// ErrCannotAdvance if no data is currently available.
func (l *RawListener[E, P, S]) Advance() error {
	has, err := l.HasData()
	if err != nil {
		return err
	}
	if !has {
		return ErrCannotAdvance
	}

	l.cursorKey = append([]byte(nil), l.iter.Key()...)
	l.needToAdvance = true

	if !l.iter.Done() {
		if err := l.iter.Next(); err != nil {
			return err
		}
	}
	return nil
}
