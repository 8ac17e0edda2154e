// If you are AI: This file contains unit tests for WaitableCell's wait/close/client semantics.

package tailstream

import (
	"testing"
	"time"
)

func TestWaitableCellWaitWakesOnWrite(t *testing.T) {
	c := NewWaitableCell(0)
	done := make(chan bool, 1)

	go func() {
		done <- c.Wait(func(v int) bool { return v >= 5 })
	}()

	time.Sleep(10 * time.Millisecond)
	c.WithWrite(func(cur *int, unmodified func()) { *cur = 5 })

	select {
	case ok := <-done:
		if !ok {
			t.Error("expected Wait to return true when predicate satisfied")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake up after write")
	}
}

func TestWaitableCellWaitWakesOnClose(t *testing.T) {
	c := NewWaitableCell(0)
	done := make(chan bool, 1)

	go func() {
		done <- c.Wait(func(v int) bool { return v >= 5 })
	}()

	time.Sleep(10 * time.Millisecond)
	c.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("expected Wait to return false on close with unsatisfied predicate")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake up after close")
	}
}

func TestWaitableCellClientBlocksClose(t *testing.T) {
	c := NewWaitableCell(0)
	release, ok := c.RegisterClient()
	if !ok {
		t.Fatal("RegisterClient should succeed before close")
	}

	closed := make(chan struct{})
	go func() {
		c.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned before client released")
	case <-time.After(30 * time.Millisecond):
	}

	release()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after client release")
	}

	if _, ok := c.RegisterClient(); ok {
		t.Error("RegisterClient should fail after close")
	}
}

func TestWaitableCellUnmodifiedWriteCompletes(t *testing.T) {
	c := NewWaitableCell(0)
	c.WithWrite(func(cur *int, unmodified func()) { unmodified() })
	// No observable assertion beyond "doesn't deadlock or panic" — Unmodified
	// only affects whether waiters are woken, which is exercised implicitly by
	// the write-wakes-wait test above using the non-suppressed path.
}
