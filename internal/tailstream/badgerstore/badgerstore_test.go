// If you are AI: This file contains unit tests for the badger-backed Storage.

package badgerstore

import (
	"testing"

	"tailstream/internal/tailstream"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSetGet(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get([]byte("k")); err != tailstream.ErrNoData {
		t.Errorf("expected ErrNoData, got %v", err)
	}

	if err := s.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := s.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(v) != "v" {
		t.Errorf("got %q, want %q", v, "v")
	}
}

func TestStoreSetRejectsOverwrite(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set([]byte("k"), []byte("v1")); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if err := s.Set([]byte("k"), []byte("v2")); err != tailstream.ErrOverwriteNotAllowed {
		t.Errorf("expected ErrOverwriteNotAllowed, got %v", err)
	}
}

func TestStoreSetOverwriteReplacesValue(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set([]byte("k"), []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.SetOverwrite([]byte("k"), []byte("v2")); err != nil {
		t.Fatalf("SetOverwrite: %v", err)
	}
	v, err := s.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(v) != "v2" {
		t.Errorf("got %q, want %q", v, "v2")
	}
}

func TestStoreHas(t *testing.T) {
	s := openTestStore(t)
	has, err := s.Has([]byte("k"))
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if has {
		t.Error("expected Has to report false before Set")
	}
	if err := s.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	has, err = s.Has([]byte("k"))
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !has {
		t.Error("expected Has to report true after Set")
	}
}

func TestStoreIteratorRangeAndOrder(t *testing.T) {
	s := openTestStore(t)
	for _, k := range []string{"b", "a", "c", "d"} {
		if err := s.Set([]byte(k), []byte(k)); err != nil {
			t.Fatalf("Set %q: %v", k, err)
		}
	}

	it, err := s.Iterator([]byte("a"), []byte("d"))
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()

	var got []string
	for !it.Done() {
		got = append(got, string(it.Key()))
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestStoreIteratorIsSnapshot(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	it, err := s.Iterator(nil, nil)
	if err != nil {
		t.Fatalf("Iterator: %v", err)
	}
	defer it.Close()

	if err := s.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	count := 0
	for !it.Done() {
		count++
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if count != 1 {
		t.Errorf("expected snapshot to see 1 key, got %d", count)
	}
}
