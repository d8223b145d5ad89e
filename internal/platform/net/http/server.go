package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"langid/internal/platform/config"
	"langid/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server is a thin wrapper over chi + stdlib http.Server.
// Run drains in-flight requests before returning when its context is cancelled,
// so shutdown sequencing (drain, then dispose resources) lives with the caller.
type Server struct {
	addr    string
	mux     *chi.Mux
	srv     *stdhttp.Server
	drainIn time.Duration
}

// NewServer creates a zero-value friendly http server
// opts receive the *chi.Mux so callers can mount routes/mw
// reads PORT (listen addr), DRAIN_TIMEOUT and MAX_HEADER_SECONDS from cfg
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("PORT", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:    addr,
		mux:     m,
		drainIn: cfg.MayDuration("DRAIN_TIMEOUT", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until ctx is cancelled or the listener fails.
// On cancellation it stops accepting connections and drains in-flight requests
// up to the configured drain timeout, then returns the drain error (if any).
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if err == stdhttp.ErrServerClosed {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Dur("timeout", s.drainIn).Msg("draining http server")
		drainCtx, cancel := context.WithTimeout(context.Background(), s.drainIn)
		defer cancel()
		return s.srv.Shutdown(drainCtx)
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
