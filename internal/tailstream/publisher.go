// If you are AI: This file implements Publisher, the sole appender for a
// stream. It enforces the HEAD-advance rule (spec.md §4.8) and writes HEAD
// before data, so a failure between the two writes leaves a HEAD marker
// pointing at a data key that was never written, never an orphan data key
// above the stored HEAD.

package tailstream

import (
	"fmt"

	"tailstream/internal/tailstream/keycodec"
)

// Codec serializes one entry of type E to bytes for storage.
type Codec[E any] interface {
	Serialize(e E) ([]byte, error)
}

// Publisher is the unique appender for a stream. Manager.AttachPublisher
// records at most one Publisher per declared stream (I5).
type Publisher[E any, P, S keycodec.Unsigned] struct {
	stream *Stream[P, S]
	codec  Codec[E]
	// primaryOf extracts the candidate primary key from an entry before it is
	// pushed.
	primaryOf func(E) P
}

// NewPublisher constructs a Publisher bound to stream, serializing entries
// with codec and deriving each entry's candidate primary key via primaryOf.
func NewPublisher[E any, P, S keycodec.Unsigned](stream *Stream[P, S], codec Codec[E], primaryOf func(E) P) *Publisher[E, P, S] {
	return &Publisher[E, P, S]{stream: stream, codec: codec, primaryOf: primaryOf}
}

// nextHead implements the HEAD-advance rule: primary below current fails,
// primary above current resets secondary to zero, primary equal to current
// increments secondary.
func nextHead[P, S keycodec.Unsigned](current OrderKey[P, S], primary P) (OrderKey[P, S], error) {
	switch {
	case primary < current.Primary:
		return OrderKey[P, S]{}, fmt.Errorf("%w: primary %v < current primary %v", ErrOrderKeysGoBackwards, primary, current.Primary)
	case primary > current.Primary:
		return OrderKey[P, S]{Primary: primary, Secondary: 0}, nil
	default:
		return OrderKey[P, S]{Primary: primary, Secondary: current.Secondary + 1}, nil
	}
}

// Push derives a candidate primary from entry, advances HEAD under the
// HEAD-advance rule, writes the new HEAD marker, writes the entry at its data
// key with non-overwriting set, assigns the new HEAD, and pokes subscribers
// after releasing the stream lock.
func (p *Publisher[E, P, S]) Push(entry E) error {
	encoded, err := p.codec.Serialize(entry)
	if err != nil {
		return fmt.Errorf("tailstream: serializing entry for stream %q: %w", p.stream.name, err)
	}

	primary := p.primaryOf(entry)

	st := p.stream
	st.mu.Lock()
	newHead, err := nextHead(st.head, primary)
	if err != nil {
		st.mu.Unlock()
		return err
	}

	dataKey := newHead.ComposeStorageKey(st.prefixes, st.delim)
	if err := st.storage.SetOverwrite(st.prefixes.metaKey, dataKey); err != nil {
		st.mu.Unlock()
		return fmt.Errorf("tailstream: writing HEAD marker for stream %q: %w", st.name, err)
	}

	if err := st.storage.Set(dataKey, encoded); err != nil {
		st.mu.Unlock()
		return fmt.Errorf("tailstream: writing data key for stream %q: %w", st.name, err)
	}

	st.head = newHead
	st.mu.Unlock()

	st.subs.PokeAll()
	return nil
}

// PushHead advances HEAD without appending an entry, by the same HEAD-advance
// rule. No data key is written.
func (p *Publisher[E, P, S]) PushHead(primary P) error {
	st := p.stream
	st.mu.Lock()
	newHead, err := nextHead(st.head, primary)
	if err != nil {
		st.mu.Unlock()
		return err
	}

	headKey := newHead.ComposeStorageKey(st.prefixes, st.delim)
	if err := st.storage.SetOverwrite(st.prefixes.metaKey, headKey); err != nil {
		st.mu.Unlock()
		return fmt.Errorf("tailstream: writing HEAD marker for stream %q: %w", st.name, err)
	}

	st.head = newHead
	st.mu.Unlock()

	st.subs.PokeAll()
	return nil
}
