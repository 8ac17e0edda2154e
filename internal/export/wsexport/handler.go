// If you are AI: This file implements the WebSocket export endpoint for a
// single stream (spec.md §6.5's supplemented sibling to the HTTP export
// endpoint), grounded on the teacher's internal/svc/wsflv handler+subscriber
// pair: upgrade, attach, write frames in a loop until the client disconnects.

// Package wsexport serves a tailstream.Stream's entries as WebSocket text
// frames, one JSON-encoded entry per frame.
package wsexport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"tailstream/internal/tailstream"
	"tailstream/internal/tailstream/keycodec"
)

const pollInterval = 20 * time.Millisecond

// Handler upgrades incoming requests to WebSocket connections and streams one
// tailstream.Stream's entries to each connected client, oldest first, tailing
// new entries as they're published.
type Handler[E any, P, S keycodec.Unsigned] struct {
	stream   *tailstream.Stream[P, S]
	decode   tailstream.Decoder[E]
	registry *tailstream.ClientRegistry
	upgrader websocket.Upgrader
}

// NewHandler constructs a Handler serving stream, gated by registry.
func NewHandler[E any, P, S keycodec.Unsigned](stream *tailstream.Stream[P, S], decode tailstream.Decoder[E], registry *tailstream.ClientRegistry) *Handler[E, P, S] {
	return &Handler[E, P, S]{
		stream:   stream,
		decode:   decode,
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and streams entries as JSON text frames
// until the client disconnects, a write fails, or the registry tears down.
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

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

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
			frame, err := json.Marshal(e)
			if err != nil {
				return err
			}
			return conn.WriteMessage(websocket.TextMessage, frame)
		}, true)
		if err != nil {
			return
		}

		if err := listener.Advance(); err != nil {
			return
		}
	}
}
