// If you are AI: This file provides HTTP API service integration, grounded
// on the teacher's internal/svc/api/server.go (Service holding a registry
// reference plus RegisterRoutes wiring onto a shared mux).

package api

import (
	"net/http"
	"time"

	"tailstream/internal/tailstream"
)

// StreamCatalog is the subset of *tailstream.Manager the API needs, named so
// tests can supply a fake without constructing a real Manager.
type StreamCatalog interface {
	Streams() []string
	Stream(name string) (tailstream.StreamInfo, bool)
}

// Service provides HTTP API functionality over a stream catalog.
type Service struct {
	manager   StreamCatalog
	startTime int64
	clock     func() int64
}

// NewService creates a new API service reporting on manager's streams.
func NewService(manager StreamCatalog) *Service {
	return &Service{
		manager:   manager,
		startTime: time.Now().Unix(),
		clock:     func() int64 { return time.Now().Unix() },
	}
}

// RegisterRoutes registers API routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/server", s.handleServer)
	mux.HandleFunc("/api/streams", s.handleStreams)
}
