// If you are AI: This file implements Stream, the per-stream catalog entry that
// owns the HEAD mutex, the current HEAD value, and the stream's Subscriptions
// (spec.md §4.7). Publisher and RawListener both operate through a *Stream.

package tailstream

import (
	"errors"
	"fmt"
	"sync"

	"tailstream/internal/tailstream/keycodec"
)

// Stream is the per-stream state shared by a Publisher and every RawListener
// or AsyncListener opened against it. The HEAD marker M(name) stores the
// literal bytes of the composed data key D(name, head.Primary, head.Secondary)
// — HEAD is self-describing, per spec.md §6.4.
type Stream[P, S keycodec.Unsigned] struct {
	name     string
	storage  Storage
	prefixes keyPrefixes
	delim    byte

	mu   sync.Mutex
	head OrderKey[P, S]

	subs *Subscriptions
}

// OpenStream recovers a Stream from an existing HEAD marker. It fails with
// ErrStreamDoesNotExist if M(name) is absent, or a wrapped ErrMalformedKey if
// its value does not decode to a valid OrderKey.
func OpenStream[P, S keycodec.Unsigned](storage Storage, name string, metaPrefix, dataPrefix string, delim byte) (*Stream[P, S], error) {
	prefixes := newKeyPrefixes(name, metaPrefix, dataPrefix, delim)

	has, err := storage.Has(prefixes.metaKey)
	if err != nil {
		return nil, fmt.Errorf("tailstream: checking HEAD marker for stream %q: %w", name, err)
	}
	if !has {
		return nil, fmt.Errorf("%w: stream %q", ErrStreamDoesNotExist, name)
	}

	raw, err := storage.Get(prefixes.metaKey)
	if err != nil {
		return nil, fmt.Errorf("tailstream: reading HEAD marker for stream %q: %w", name, err)
	}

	head, err := DecomposeStorageKey[P, S](raw, prefixes, delim)
	if err != nil {
		return nil, fmt.Errorf("tailstream: decoding HEAD for stream %q: %w", name, err)
	}

	return &Stream[P, S]{
		name:     name,
		storage:  storage,
		prefixes: prefixes,
		delim:    delim,
		head:     head,
		subs:     NewSubscriptions(),
	}, nil
}

// SeedStream creates a brand-new stream by writing its HEAD marker with
// non-overwriting set, failing with ErrStreamAlreadyExists if M(name) is
// already present. Used during StreamManager's initialization protocol
// (spec.md §4.11 step 1), never during normal recovery.
func SeedStream[P, S keycodec.Unsigned](storage Storage, name string, metaPrefix, dataPrefix string, delim byte, starting OrderKey[P, S]) (*Stream[P, S], error) {
	prefixes := newKeyPrefixes(name, metaPrefix, dataPrefix, delim)
	encoded := starting.ComposeStorageKey(prefixes, delim)

	if err := storage.Set(prefixes.metaKey, encoded); err != nil {
		if errors.Is(err, ErrOverwriteNotAllowed) {
			return nil, fmt.Errorf("%w: stream %q", ErrStreamAlreadyExists, name)
		}
		return nil, fmt.Errorf("tailstream: seeding HEAD marker for stream %q: %w", name, err)
	}

	return &Stream[P, S]{
		name:     name,
		storage:  storage,
		prefixes: prefixes,
		delim:    delim,
		head:     starting,
		subs:     NewSubscriptions(),
	}, nil
}

// Name returns the stream's name.
func (st *Stream[P, S]) Name() string { return st.name }

// Head returns the current HEAD value under the stream lock.
func (st *Stream[P, S]) Head() OrderKey[P, S] {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.head
}

// Subscriptions returns the stream's subscriber set, for Register/Unregister
// by listeners.
func (st *Stream[P, S]) Subscriptions() *Subscriptions { return st.subs }

// EndKey returns D(name, ∞), the exclusive upper bound of this stream's data
// key range.
func (st *Stream[P, S]) EndKey() []byte { return st.prefixes.endKey }

// DataPrefix returns "d" δ name δ, the common prefix of every data key for
// this stream.
func (st *Stream[P, S]) DataPrefix() []byte { return st.prefixes.dataPfx }

// HeadString renders the current HEAD as its composed storage-key form, e.g.
// "d:test:0000000003:0000000000" — suitable for introspection and logging.
func (st *Stream[P, S]) HeadString() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return string(st.head.ComposeStorageKey(st.prefixes, st.delim))
}

// SubscriberCount returns the number of listeners currently registered
// against this stream.
func (st *Stream[P, S]) SubscriberCount() int { return st.subs.Count() }

// StreamInfo is the type-erased view of a Stream that StreamManager catalogs
// for introspection, independent of the stream's concrete (E, P, S) types.
type StreamInfo interface {
	Name() string
	HeadString() string
	SubscriberCount() int
}
