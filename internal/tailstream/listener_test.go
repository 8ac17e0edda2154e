// If you are AI: This file contains unit tests for RawListener, including the
// bounded-listener and tailing-listener end-to-end scenarios from spec.md §8.

package tailstream

import (
	"encoding/json"
	"testing"
)

type jsonDecoder struct{}

func (jsonDecoder) Decode(raw []byte) (testEntry, error) {
	var e testEntry
	err := json.Unmarshal(raw, &e)
	return e, err
}

func TestRawListenerBoundedRange(t *testing.T) {
	_, stream, pub := newTestPublisher(t)
	for i := uint32(1); i <= 5; i++ {
		if err := pub.Push(testEntry{IKey: i}); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}

	begin := OrderKey[uint32, uint32]{Primary: 2, Secondary: 0}
	end := OrderKey[uint32, uint32]{Primary: 4, Secondary: 0}
	l := NewRawListener[testEntry](stream, jsonDecoder{}, &begin, &end)

	var got []uint32
	for {
		has, err := l.HasData()
		if err != nil {
			t.Fatalf("HasData: %v", err)
		}
		if !has {
			break
		}
		err = l.ProcessCurrent(func(e testEntry) error {
			got = append(got, e.IKey)
			return nil
		}, true)
		if err != nil {
			t.Fatalf("ProcessCurrent: %v", err)
		}
		if err := l.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}

	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("unexpected yielded primaries %v, want [2 3]", got)
	}

	if err := l.Advance(); err != ErrCannotAdvance {
		t.Errorf("expected ErrCannotAdvance, got %v", err)
	}
	reached, err := l.ReachedEndOfRange()
	if err != nil {
		t.Fatalf("ReachedEndOfRange: %v", err)
	}
	if !reached {
		t.Error("expected ReachedEndOfRange to be true")
	}
}

func TestRawListenerTailing(t *testing.T) {
	_, stream, pub := newTestPublisher(t)
	l := NewRawListener[testEntry](stream, jsonDecoder{}, nil, nil)

	has, err := l.HasData()
	if err != nil {
		t.Fatalf("HasData (empty stream): %v", err)
	}
	if has {
		t.Error("expected no data on empty stream")
	}

	if err := pub.Push(testEntry{IKey: 10}); err != nil {
		t.Fatalf("Push 10: %v", err)
	}

	has, err = l.HasData()
	if err != nil {
		t.Fatalf("HasData after first push: %v", err)
	}
	if !has {
		t.Fatal("expected data after push")
	}

	var gotKey uint32
	err = l.ProcessCurrent(func(e testEntry) error { gotKey = e.IKey; return nil }, true)
	if err != nil {
		t.Fatalf("ProcessCurrent: %v", err)
	}
	if gotKey != 10 {
		t.Errorf("got primary %d, want 10", gotKey)
	}
	if err := l.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	has, err = l.HasData()
	if err != nil {
		t.Fatalf("HasData after advance: %v", err)
	}
	if has {
		t.Error("expected no data immediately after draining")
	}

	if err := pub.Push(testEntry{IKey: 15}); err != nil {
		t.Fatalf("Push 15: %v", err)
	}

	has, err = l.HasData()
	if err != nil {
		t.Fatalf("HasData after second push: %v", err)
	}
	if !has {
		t.Fatal("expected data after second push")
	}

	err = l.ProcessCurrent(func(e testEntry) error { gotKey = e.IKey; return nil }, true)
	if err != nil {
		t.Fatalf("ProcessCurrent: %v", err)
	}
	if gotKey != 15 {
		t.Errorf("got primary %d, want 15", gotKey)
	}
}

func TestRawListenerProcessCurrentNoDataRequired(t *testing.T) {
	_, stream, _ := newTestPublisher(t)
	l := NewRawListener[testEntry](stream, jsonDecoder{}, nil, nil)

	err := l.ProcessCurrent(func(testEntry) error { return nil }, true)
	if err != ErrNoDataAvailable {
		t.Errorf("expected ErrNoDataAvailable, got %v", err)
	}

	if err := l.ProcessCurrent(func(testEntry) error { return nil }, false); err != nil {
		t.Errorf("expected nil error when requireData is false, got %v", err)
	}
}
