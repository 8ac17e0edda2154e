// If you are AI: This file implements HTTP API handlers, grounded on the
// teacher's internal/svc/api/handlers.go. The teacher reported active media
// streams with a publisher flag and subscriber count; here the same shape
// reports declared tailstream streams with their current HEAD.

package api

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// ServerResponse represents the /api/server response.
type ServerResponse struct {
	Version   string `json:"version"`
	Uptime    int64  `json:"uptime"` // seconds
	GoVersion string `json:"go_version"`
}

// StreamInfo represents one declared stream's state for API responses.
type StreamInfo struct {
	Name            string `json:"name"`
	Head            string `json:"head"`
	SubscriberCount int    `json:"subscriber_count"`
}

// StreamsResponse represents the /api/streams response.
type StreamsResponse struct {
	Streams []StreamInfo `json:"streams"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServer handles GET /api/server.
func (s *Service) handleServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	response := ServerResponse{
		Version:   "1.0.0",
		Uptime:    s.clock() - s.startTime,
		GoVersion: runtime.Version(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleStreams handles GET /api/streams.
func (s *Service) handleStreams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	names := s.manager.Streams()
	streams := make([]StreamInfo, 0, len(names))
	for _, name := range names {
		info, ok := s.manager.Stream(name)
		if !ok {
			continue
		}
		streams = append(streams, StreamInfo{
			Name:            info.Name(),
			Head:            info.HeadString(),
			SubscriberCount: info.SubscriberCount(),
		})
	}

	s.writeJSON(w, http.StatusOK, StreamsResponse{Streams: streams})
}

// writeJSON writes a JSON response.
func (s *Service) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
