// If you are AI: This file implements the production Storage backend over
// badger, an embedded LSM-tree key-value engine. Badger's own iterators are
// snapshotted at creation exactly like the contract RawListener is built
// against, so no extra buffering is needed here.

// Package badgerstore implements tailstream.Storage over
// github.com/dgraph-io/badger/v4, for deployments that need the stream
// engine's data to persist across restarts.
package badgerstore

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"tailstream/internal/tailstream"
)

// Store wraps a badger.DB as a tailstream.Storage implementation.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger database rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("tailstream/badgerstore: opening %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Set implements tailstream.Storage.
func (s *Store) Set(k, v []byte) error {
	if len(k) == 0 {
		return tailstream.ErrEmptyKey
	}
	if len(v) == 0 {
		return tailstream.ErrEmptyValue
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		switch {
		case err == nil:
			return tailstream.ErrOverwriteNotAllowed
		case errors.Is(err, badger.ErrKeyNotFound):
			return txn.Set(k, v)
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, tailstream.ErrOverwriteNotAllowed) {
			return tailstream.ErrOverwriteNotAllowed
		}
		return fmt.Errorf("tailstream/badgerstore: set %q: %w", k, err)
	}
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

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, v)
	})
	if err != nil {
		return fmt.Errorf("tailstream/badgerstore: set_overwrite %q: %w", k, err)
	}
	return nil
}

// Get implements tailstream.Storage.
func (s *Store) Get(k []byte) ([]byte, error) {
	if len(k) == 0 {
		return nil, tailstream.ErrEmptyKey
	}

	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return tailstream.ErrNoData
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, tailstream.ErrNoData) {
			return nil, tailstream.ErrNoData
		}
		return nil, fmt.Errorf("tailstream/badgerstore: get %q: %w", k, err)
	}
	return out, nil
}

// Has implements tailstream.Storage.
func (s *Store) Has(k []byte) (bool, error) {
	if len(k) == 0 {
		return false, tailstream.ErrEmptyKey
	}

	var has bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			has = false
			return nil
		}
		if err != nil {
			return err
		}
		has = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("tailstream/badgerstore: has %q: %w", k, err)
	}
	return has, nil
}

// Iterator implements tailstream.Storage. The returned iterator owns a
// dedicated read-only transaction; callers must Close it.
func (s *Store) Iterator(begin, end []byte) (tailstream.Iterator, error) {
	txn := s.db.NewTransaction(false)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	it.Seek(begin)
	return &storeIterator{txn: txn, it: it, end: append([]byte(nil), end...)}, nil
}

type storeIterator struct {
	txn *badger.Txn
	it  *badger.Iterator
	end []byte
}

func (it *storeIterator) Done() bool {
	if !it.it.Valid() {
		return true
	}
	if len(it.end) > 0 && bytes.Compare(it.it.Item().Key(), it.end) >= 0 {
		return true
	}
	return false
}

func (it *storeIterator) Key() []byte {
	return it.it.Item().KeyCopy(nil)
}

func (it *storeIterator) Value() []byte {
	v, err := it.it.Item().ValueCopy(nil)
	if err != nil {
		return nil
	}
	return v
}

func (it *storeIterator) Next() error {
	if it.Done() {
		return tailstream.ErrIteratorOutOfBounds
	}
	it.it.Next()
	return nil
}

func (it *storeIterator) Close() error {
	it.it.Close()
	it.txn.Discard()
	return nil
}
