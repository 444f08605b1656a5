package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/logging"
	"github.com/stellarweave/galaxysim/pkg/metrics"
)

// Server is the HTTP control surface over a running simulation. It
// exposes the live snapshot, the physics configuration, and the
// interaction endpoints (preferences, central promotion, drag).
type Server struct {
	store     *galaxy.Store
	driver    *galaxy.Driver
	strategy  galaxy.Strategy
	reg       *metrics.Registry
	log       logging.Logger
	startTime time.Time
	version   string
	port      int

	httpServer *http.Server
}

// NewServer creates an API server over a store and its driver.
func NewServer(store *galaxy.Store, driver *galaxy.Driver, strategy galaxy.Strategy, reg *metrics.Registry, log logging.Logger, port int) *Server {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Server{
		store:     store,
		driver:    driver,
		strategy:  strategy,
		reg:       reg,
		log:       log.With(logging.Component("api")),
		startTime: time.Now(),
		version:   "1.0.0",
		port:      port,
	}
}

// Handler builds the routing table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.reg.Prometheus(), promhttp.HandlerOpts{}))

	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/config", s.handleConfig)
	mux.HandleFunc("/preferences", s.handlePreferences)
	mux.HandleFunc("/central", s.handleCentral)
	mux.HandleFunc("/traits", s.handleTraits)
	mux.HandleFunc("/drag", s.handleDrag)
	mux.HandleFunc("/equilibrium/invalidate", s.handleInvalidate)
	mux.HandleFunc("/equilibrium/snap", s.handleSnap)
	mux.HandleFunc("/nodes/regenerate", s.handleRegenerate)

	handler := s.panicRecoveryMiddleware(
		s.loggingMiddleware(
			s.metricsMiddleware(
				s.corsMiddleware(
					s.bodySizeLimitMiddleware(mux, 1<<20)))))
	return handler
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("api server starting", logging.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	s.respondJSON(w, status, response)
}
