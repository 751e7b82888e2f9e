// Package statsapi exposes a running service's metrics over HTTP.
//
//	GET /healthz  ->  "ok"
//	GET /stats    ->  metrics snapshot as JSON
package statsapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"otp/internal/metrics"
	"otp/internal/transport"
	"otp/util"
)

const shutdownGrace = 5 * time.Second

// Handler serves the stats routes for one collector.
type Handler struct {
	Metrics *metrics.Collector
}

// RegisterRoutes registers the stats routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/healthz", h.handleHealth)
	r.Get("/stats", h.handleStats)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok")) //nolint:errcheck
}

func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Metrics.Snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// NewRouter returns a chi router serving the stats routes.
func NewRouter(m *metrics.Collector) chi.Router {
	r := chi.NewRouter()
	(&Handler{Metrics: m}).RegisterRoutes(r)
	return r
}

// Server is a running stats endpoint.
type Server struct {
	srv  *http.Server
	addr net.Addr
	done chan struct{}
}

// Start binds addr and serves the stats routes until ctx is done.
func Start(ctx context.Context, addr string, m *metrics.Collector, logger *util.Logger) (*Server, error) {
	// Shutdown owns the listener; it must not be closed out from under Serve.
	ln, err := transport.Listen(context.WithoutCancel(ctx), addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		srv: &http.Server{
			Handler:           NewRouter(m),
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: ln.Addr(),
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Warn("stats endpoint: %v", err)
		}
	}()
	context.AfterFunc(ctx, func() { s.Close() }) //nolint:errcheck

	logger.Info("stats endpoint on http://%s", s.addr)
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr { return s.addr }

// Done is closed once the server has stopped serving.
func (s *Server) Done() <-chan struct{} { return s.done }

// Close stops the server, letting in-flight requests finish within the
// shutdown grace period.  It is safe to call more than once.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
