// If you are AI: This file implements an in-memory Storage backend for tests
// and small deployments: a map guarded by a single RWMutex. Iterator walks a
// point-in-time copy of the matching keys (sorted) and their values taken at
// creation, which is sufficient to exercise RawListener's
// re-seek-on-exhaustion behavior the same way a real LSM engine would.

// Package memstore implements tailstream.Storage over a plain in-memory map,
// intended for tests and for small deployments that do not need persistence.
package memstore

import (
	"sort"
	"sync"

	"tailstream/internal/tailstream"
)

// Store is a map-backed, concurrency-safe implementation of tailstream.Storage.
// Lock expectations: mu guards data for the lifetime of the Store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New constructs an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Set implements tailstream.Storage.
func (s *Store) Set(k, v []byte) error {
	if len(k) == 0 {
		return tailstream.ErrEmptyKey
	}
	if len(v) == 0 {
		return tailstream.ErrEmptyValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[string(k)]; exists {
		return tailstream.ErrOverwriteNotAllowed
	}
	s.data[string(k)] = cloneBytes(v)
	return nil
}

// SetOverwrite implements tailstream.Storage.
func (s *Store) SetOverwrite(k, v []byte) error {
	if len(k) == 0 {
		return tailstream.ErrEmptyKey
	}
	if len(v) == 0 {
		return tailstream.ErrEmptyValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[string(k)] = cloneBytes(v)
	return nil
}

// Get implements tailstream.Storage.
func (s *Store) Get(k []byte) ([]byte, error) {
	if len(k) == 0 {
		return nil, tailstream.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[string(k)]
	if !ok {
		return nil, tailstream.ErrNoData
	}
	return cloneBytes(v), nil
}

// Has implements tailstream.Storage.
func (s *Store) Has(k []byte) (bool, error) {
	if len(k) == 0 {
		return false, tailstream.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[string(k)]
	return ok, nil
}

// Iterator implements tailstream.Storage. The returned iterator is a
// snapshot: keys set after Iterator returns are not observed by it, matching
// the snapshotted-at-creation contract RawListener is built against.
func (s *Store) Iterator(begin, end []byte) (tailstream.Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	beginStr, endStr := string(begin), string(end)
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if k < beginStr {
			continue
		}
		if len(end) > 0 && k >= endStr {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = cloneBytes(s.data[k])
	}

	return &storeIterator{keys: keys, values: values}, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

type storeIterator struct {
	keys   []string
	values [][]byte
	pos    int
}

func (it *storeIterator) Done() bool { return it.pos >= len(it.keys) }

func (it *storeIterator) Key() []byte { return []byte(it.keys[it.pos]) }

func (it *storeIterator) Value() []byte { return it.values[it.pos] }

func (it *storeIterator) Next() error {
	if it.Done() {
		return tailstream.ErrIteratorOutOfBounds
	}
	it.pos++
	return nil
}

func (it *storeIterator) Close() error { return nil }
