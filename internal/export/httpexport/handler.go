// If you are AI: This file implements the chunked-HTTP export endpoint for a
// single stream (spec.md §6.5). Entries are written as newline-delimited
// JSON, flushed after each one, so a client can tail a stream over a plain
// HTTP GET the same way the teacher's httpflv endpoint tails an FLV stream.

// Package httpexport serves a tailstream.Stream's entries over chunked HTTP.
package httpexport

import (
	"encoding/json"
	"net/http"
	"time"

	"tailstream/internal/tailstream"
	"tailstream/internal/tailstream/keycodec"
)

const pollInterval = 20 * time.Millisecond

// Handler serves one stream's entries as newline-delimited JSON over a
// long-lived chunked HTTP response. Every accepted connection registers a
// ClientRegistry token so the registry's teardown can wait for in-flight
// connections to notice and exit.
type Handler[E any, P, S keycodec.Unsigned] struct {
	stream   *tailstream.Stream[P, S]
	decode   tailstream.Decoder[E]
	registry *tailstream.ClientRegistry
}

// NewHandler constructs a Handler serving stream, gated by registry.
func NewHandler[E any, P, S keycodec.Unsigned](stream *tailstream.Stream[P, S], decode tailstream.Decoder[E], registry *tailstream.ClientRegistry) *Handler[E, P, S] {
	return &Handler[E, P, S]{stream: stream, decode: decode, registry: registry}
}

// ServeHTTP streams every entry of the stream, oldest first, then tails new
// entries as they are published, blocking until the client disconnects, an
// encode or write error occurs, or the registry begins tearing down.
func (h *Handler[E, P, S]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token, err := h.registry.ScopedClient()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	defer token.Release()

	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	listener := tailstream.NewRawListener[E, P, S](h.stream, h.decode, nil, nil)

	for token.IsLive() {
		has, err := listener.HasData()
		if err != nil {
			return
		}
		if !has {
			time.Sleep(pollInterval)
			continue
		}

		err = listener.ProcessCurrent(func(e E) error {
			line, err := json.Marshal(e)
			if err != nil {
				return err
			}
			line = append(line, '\n')
			_, err = w.Write(line)
			return err
		}, true)
		if err != nil {
			return
		}
		flusher.Flush()

		if err := listener.Advance(); err != nil {
			return
		}
	}
}
