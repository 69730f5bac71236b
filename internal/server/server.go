// Package server exposes the splitter over HTTP as a streaming endpoint.
//
// A client POSTs {"text": "..."} to / and receives one framed record per
// segment, flushed as soon as it is produced, followed by a single Done
// record. Streams are admitted through a fixed pool of slots so a burst of
// large inputs cannot exhaust the process.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	sentsplit "github.com/jamesainslie/go-sentsplit"
	"github.com/jamesainslie/go-sentsplit/internal/admission"
	"github.com/jamesainslie/go-sentsplit/internal/config"
)

// Server serves segment streams over HTTP.
type Server struct {
	cfg      *config.Config
	splitter *sentsplit.Splitter
	pool     *admission.Pool
	logger   *slog.Logger
	http     *http.Server
}

// New creates a server from cfg. The configuration must already be valid.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	splitter, err := sentsplit.New(
		sentsplit.WithMaxLength(cfg.MaxSegmentLength),
		sentsplit.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating splitter: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		splitter: splitter,
		pool:     admission.NewPool(cfg.MaxConcurrentStreams),
		logger:   logger,
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	return s, nil
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", s.handleSplit)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.withRequestID(mux)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then stops
// admitting new streams and waits up to the shutdown timeout for running
// ones to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)

		_ = s.pool.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close stops admitting streams without stopping the listener.
func (s *Server) Close() error {
	return s.pool.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"max_length":        s.splitter.MaxLength(),
		"available_streams": s.pool.Available(),
	})
}

type ctxKey struct{}

// withRequestID tags every request with an X-Request-ID, reusing the
// client's value when present, and logs completion.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

		s.logger.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) requestLogger(r *http.Request) *slog.Logger {
	if id, ok := r.Context().Value(ctxKey{}).(string); ok {
		return s.logger.With("request_id", id)
	}
	return s.logger
}

// statusWriter records the response status. Unwrap lets
// http.ResponseController reach the underlying flusher.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
