// If you are AI: This file implements the HTTP server lifecycle and routing,
// adapted from the teacher's internal/server/server.go. The teacher wired a
// bus.Registry plus RTMP/HTTP-FLV/WS-FLV media services; this wires a
// tailstream.Manager plus the stream introspection API and the
// httpexport/wsexport tailing endpoints, following spec.md §4.11's startup
// protocol (open or seed every declared stream, attach declared publishers,
// then Finish()).
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"tailstream/internal/api"
	"tailstream/internal/config"
	"tailstream/internal/export/httpexport"
	"tailstream/internal/export/wsexport"
	"tailstream/internal/svc/health"
	"tailstream/internal/tailstream"
	"tailstream/internal/tailstream/badgerstore"
	"tailstream/internal/tailstream/codec"
	"tailstream/internal/tailstream/memstore"
)

// rawEntry is the concrete entry type the generic server wires through the
// export endpoints. A host embedding this package for a specific domain
// opens its own typed Publisher/RawListener directly against the same
// underlying stream (see tailstream.OpenStream); the server's own job is
// bookkeeping, introspection, and a schema-agnostic tailing view, so it only
// needs to decode entries as opaque JSON.
type rawEntry = map[string]any

type jsonEntryDecoder = codec.JSON[rawEntry]

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer    *http.Server
	healthSvc     *health.Service
	apiSvc        *api.Service
	httpExportSvc *httpexport.Service
	wsExportSvc   *wsexport.Service
	manager       *tailstream.Manager
	registries    map[string]*tailstream.ClientRegistry
	storage       tailstream.Storage
	closeStorage  func() error
}

// openStorage constructs the configured storage backend.
func openStorage(cfg config.StorageConfig) (tailstream.Storage, func() error, error) {
	switch cfg.Backend {
	case "badger":
		store, err := badgerstore.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger store at %q: %w", cfg.Path, err)
		}
		return store, store.Close, nil
	default:
		store := memstore.New()
		return store, func() error { return nil }, nil
	}
}

// openOrSeedStream recovers a previously-created stream, or seeds a fresh one
// if this is the first time the declared name has been started. Only the
// 32-bit/32-bit OrderKey instantiation is wired at the generic-server level;
// other declared widths are valid tailstream.Stream instantiations but
// require a host written against the concrete width (Go generics need the
// type argument at compile time, so a width-polymorphic server can't
// construct them from a runtime config value).
func openOrSeedStream(storage tailstream.Storage, decl config.StreamDecl) (*tailstream.Stream[uint32, uint32], error) {
	delim := decl.Delimiter[0]
	stream, err := tailstream.OpenStream[uint32, uint32](storage, decl.Name, decl.MetaPrefix, decl.DataPrefix, delim)
	if err == nil {
		return stream, nil
	}
	if !errors.Is(err, tailstream.ErrStreamDoesNotExist) {
		return nil, fmt.Errorf("open stream %q: %w", decl.Name, err)
	}
	return tailstream.SeedStream[uint32, uint32](storage, decl.Name, decl.MetaPrefix, decl.DataPrefix, delim, tailstream.OrderKey[uint32, uint32]{})
}

// New creates a new server instance with the given configuration, opening
// storage and every declared stream. The server is not started until Start
// is called.
func New(cfg *config.Config) (*Server, error) {
	storage, closeStorage, err := openStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cfg.Streams))
	for _, decl := range cfg.Streams {
		if decl.PrimaryWidth == 32 && decl.SecondaryWidth == 32 {
			names = append(names, decl.Name)
		}
	}
	manager := tailstream.NewManager(names)

	httpExportSvc := httpexport.NewService()
	wsExportSvc := wsexport.NewService()
	registries := make(map[string]*tailstream.ClientRegistry, len(cfg.Streams))

	for _, decl := range cfg.Streams {
		if decl.PrimaryWidth != 32 || decl.SecondaryWidth != 32 {
			log.Printf("server: skipping stream %q: only 32/32-bit order keys are wired at server level", decl.Name)
			continue
		}

		stream, err := openOrSeedStream(storage, decl)
		if err != nil {
			closeStorage()
			return nil, err
		}
		if err := manager.RegisterStream(decl.Name, stream); err != nil {
			closeStorage()
			return nil, fmt.Errorf("register stream %q: %w", decl.Name, err)
		}
		if decl.HasPublisher {
			if err := manager.AttachPublisher(decl.Name); err != nil {
				closeStorage()
				return nil, fmt.Errorf("attach publisher %q: %w", decl.Name, err)
			}
		}

		registry := tailstream.NewClientRegistry()
		registries[decl.Name] = registry

		decode := jsonEntryDecoder{}
		httpExportSvc.Mount("/export/http/"+decl.Name, httpexport.NewHandler[rawEntry, uint32, uint32](stream, decode, registry))
		wsExportSvc.Mount("/export/ws/"+decl.Name, wsexport.NewHandler[rawEntry, uint32, uint32](stream, decode, registry))
	}

	if err := manager.Finish(); err != nil {
		closeStorage()
		return nil, fmt.Errorf("startup protocol: %w", err)
	}

	mux := http.NewServeMux()

	healthSvc := health.New()
	healthSvc.RegisterRoutes(mux)

	apiSvc := api.NewService(manager)
	apiSvc.RegisterRoutes(mux)

	httpExportSvc.RegisterRoutes(mux)
	wsExportSvc.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.ExportPort),
		Handler: mux,
	}

	return &Server{
		httpServer:    httpServer,
		healthSvc:     healthSvc,
		apiSvc:        apiSvc,
		httpExportSvc: httpExportSvc,
		wsExportSvc:   wsExportSvc,
		manager:       manager,
		registries:    registries,
		storage:       storage,
		closeStorage:  closeStorage,
	}, nil
}

// Manager exposes the underlying tailstream.Manager for hosts that need to
// attach typed Publishers/RawListeners directly.
func (s *Server) Manager() *tailstream.Manager {
	return s.manager
}

// Start begins serving HTTP requests. This method blocks until the server is
// stopped or encounters an error.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, closing every stream's
// ClientRegistry (blocking until in-flight exporter connections notice and
// exit) before closing storage.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	for _, registry := range s.registries {
		registry.Close()
	}

	if closeErr := s.closeStorage(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// ShutdownWithTimeout stops the server with a fixed 5-second timeout.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
