// If you are AI: This file provides HTTP export service integration: a
// collection of per-stream handlers registered on a shared mux, mirroring
// the teacher's httpflv.Service wrapping a single Handler.

package httpexport

import "net/http"

// Service is a named collection of stream export handlers registered on one
// HTTP mux, one path each.
type Service struct {
	handlers map[string]http.Handler
}

// NewService constructs an empty Service. Add handlers with Mount before
// calling RegisterRoutes.
func NewService() *Service {
	return &Service{handlers: make(map[string]http.Handler)}
}

// Mount associates path with handler; RegisterRoutes wires it onto a mux.
func (s *Service) Mount(path string, handler http.Handler) {
	s.handlers[path] = handler
}

// RegisterRoutes registers every mounted handler on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	for path, handler := range s.handlers {
		mux.Handle(path, handler)
	}
}
