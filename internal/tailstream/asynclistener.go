// If you are AI: This file implements AsyncListener, the worker-goroutine
// wrapper around a RawListener (spec.md §4.10). It registers as a Subscriber,
// drains until quiet, then parks until poked or a polling backstop fires.

package tailstream

import (
	"sync"
	"time"

	"tailstream/internal/tailstream/keycodec"
)

const asyncListenerPollInterval = 10 * time.Millisecond

type asyncListenerState struct {
	pokeCount   uint64
	quietGen    uint64
	terminating bool
}

// AsyncListener drains a RawListener on its own goroutine, handing each entry
// to a processor callback, and re-wakes on publisher pokes plus a polling
// backstop so it never relies solely on a poke arriving.
type AsyncListener[E any, P, S keycodec.Unsigned] struct {
	raw       *RawListener[E, P, S]
	stream    *Stream[P, S]
	process   func(E) error
	cell      *WaitableCell[asyncListenerState]
	subID     int
	done      chan struct{}
	stopTimer chan struct{}

	errMu   sync.Mutex
	lastErr error
}

// NewAsyncListener constructs an AsyncListener over stream, starting from the
// earliest data key and tailing forever, and immediately starts its worker
// goroutine. process is called once per entry, in increasing key order; a
// non-nil return from process stops the worker (the listener still shuts down
// cleanly on Close).
func NewAsyncListener[E any, P, S keycodec.Unsigned](stream *Stream[P, S], decode Decoder[E], process func(E) error) *AsyncListener[E, P, S] {
	l := &AsyncListener[E, P, S]{
		raw:       NewRawListener[E, P, S](stream, decode, nil, nil),
		stream:    stream,
		process:   process,
		cell:      NewWaitableCell(asyncListenerState{}),
		done:      make(chan struct{}),
		stopTimer: make(chan struct{}),
	}

	l.subID = stream.Subscriptions().Register(l)

	go l.backstop()
	go l.run()

	return l
}

// Poke implements Subscriber. It is called by the publisher after every
// successful append to this stream.
func (l *AsyncListener[E, P, S]) Poke() {
	l.cell.WithWrite(func(cur *asyncListenerState, _ func()) { cur.pokeCount++ })
}

func (l *AsyncListener[E, P, S]) backstop() {
	ticker := time.NewTicker(asyncListenerPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Poke()
		case <-l.stopTimer:
			return
		}
	}
}

// Err returns the error that stopped the worker, if any. A non-nil result
// means the worker exited before Close was called; Close is still safe to
// call afterward.
func (l *AsyncListener[E, P, S]) Err() error {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	return l.lastErr
}

func (l *AsyncListener[E, P, S]) setErr(err error) {
	l.errMu.Lock()
	l.lastErr = err
	l.errMu.Unlock()
}

func (l *AsyncListener[E, P, S]) run() {
	defer close(l.done)

	for {
		for {
			has, err := l.raw.HasData()
			if err != nil {
				l.setErr(err)
				return
			}
			if !has {
				break
			}
			if err := l.raw.ProcessCurrent(l.process, true); err != nil {
				l.setErr(err)
				return
			}
			if err := l.raw.Advance(); err != nil {
				l.setErr(err)
				return
			}
		}

		var lastPoke uint64
		var terminating bool
		l.cell.WithWrite(func(cur *asyncListenerState, _ func()) {
			cur.quietGen++
			lastPoke = cur.pokeCount
			terminating = cur.terminating
		})
		if terminating {
			return
		}

		woke := l.cell.Wait(func(s asyncListenerState) bool {
			return s.terminating || s.pokeCount != lastPoke
		})
		if !woke {
			return
		}
	}
}

// WaitUntilCurrent blocks until the worker completes its next full drain pass
// (observes no more data available). Intended for tests.
func (l *AsyncListener[E, P, S]) WaitUntilCurrent() {
	var startGen uint64
	l.cell.WithRead(func(s asyncListenerState) { startGen = s.quietGen })
	l.cell.Wait(func(s asyncListenerState) bool { return s.quietGen != startGen })
}

// Close signals termination, unregisters from the stream's Subscriptions, and
// joins the worker goroutine. The worker's final drain always completes
// before Close returns; no entries are dropped.
func (l *AsyncListener[E, P, S]) Close() {
	l.stream.Subscriptions().Unregister(l.subID)
	close(l.stopTimer)
	l.cell.WithWrite(func(cur *asyncListenerState, _ func()) { cur.terminating = true })
	<-l.done
}
