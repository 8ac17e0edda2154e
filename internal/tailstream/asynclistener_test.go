// If you are AI: This file contains unit tests for AsyncListener, covering
// drain-then-wake behavior and shutdown safety (spec.md P7).

package tailstream

import (
	"sync"
	"testing"
	"time"
)

func TestAsyncListenerDrainsAndWakesOnPush(t *testing.T) {
	_, stream, pub := newTestPublisher(t)

	var mu sync.Mutex
	var got []uint32
	al := NewAsyncListener[testEntry](stream, jsonDecoder{}, func(e testEntry) error {
		mu.Lock()
		got = append(got, e.IKey)
		mu.Unlock()
		return nil
	})
	defer al.Close()

	al.WaitUntilCurrent()

	for _, k := range []uint32{1, 2, 3} {
		if err := pub.Push(testEntry{IKey: k}); err != nil {
			t.Fatalf("Push %d: %v", k, err)
		}
	}
	al.WaitUntilCurrent()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("unexpected processed sequence %v", got)
	}
}

func TestAsyncListenerCloseIsBoundedAndDropsNothing(t *testing.T) {
	_, stream, pub := newTestPublisher(t)

	var mu sync.Mutex
	var got []uint32
	al := NewAsyncListener[testEntry](stream, jsonDecoder{}, func(e testEntry) error {
		mu.Lock()
		got = append(got, e.IKey)
		mu.Unlock()
		return nil
	})

	for _, k := range []uint32{1, 2, 3} {
		if err := pub.Push(testEntry{IKey: k}); err != nil {
			t.Fatalf("Push %d: %v", k, err)
		}
	}

	closed := make(chan struct{})
	go func() {
		al.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return within bounded time")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 {
		t.Errorf("expected all 3 entries processed before Close returned, got %d", len(got))
	}
}
