package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/refstore/pkg/middleware"
	"github.com/vango-dev/refstore/pkg/vango"
	"github.com/vango-dev/refstore/pkg/vdom"
)

// Server serves the page shell, the session websocket, metrics and a health
// check.
type Server struct {
	root     func() *vdom.VNode
	config   *ServerConfig
	sessions *SessionManager
	metrics  *middleware.Metrics
	upgrader websocket.Upgrader
	router   chi.Router

	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server for root. A nil config uses DefaultServerConfig;
// unset fields of a non-nil config are filled from the defaults.
func New(root func() *vdom.VNode, config *ServerConfig) *Server {
	if config == nil {
		config = DefaultServerConfig()
	} else {
		config.applyDefaults()
	}

	vango.DebugMode = config.DebugMode

	logger := slog.Default().With("component", "server")
	if err := config.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
	}

	metrics := middleware.Prometheus()
	s := &Server{
		root:     root,
		config:   config,
		metrics:  metrics,
		sessions: NewSessionManager(config.SessionConfig, config.MaxSessions, metrics, slog.Default().With("component", "sessions")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(s.config.WSPath, s.HandleWebSocket)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}

// handlePage renders a fresh session to a full document. The session only
// lives for the request; the websocket mounts its own.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := NewSession(s.root, s.config.SessionConfig, s.logger, nil)
	defer sess.Close()
	defer vango.ReleaseGoroutine()

	if err := sess.Mount(); err != nil {
		s.logger.Error("page render failed", "error", err, "request_id", chimw.GetReqID(r.Context()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sess.WritePage(w, s.config.Title, s.config.WSPath); err != nil {
		s.logger.Error("page write failed", "error", err)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.sessions.StartCleanup(s.config.CleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Metrics returns the server metrics.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}
