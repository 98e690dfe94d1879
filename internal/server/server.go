package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexiusacademia/shoring/internal/settings"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// Server is the browser front end: a parameter form, a rendered image of
// the lattice, and the model as JSON
type Server struct {
	settings settings.Settings
	log      *slog.Logger
	router   *mux.Router
	limiter  *IPRateLimiter
}

// New wires the routes
func New(s settings.Settings, logger *slog.Logger) *Server {
	srv := &Server{
		settings: s,
		log:      logger,
		router:   mux.NewRouter(),
	}

	limiter := NewIPRateLimiter(rate.Limit(s.RateLimit), s.RateBurst)
	srv.limiter = limiter

	srv.router.HandleFunc("/", srv.handleIndex).Methods("GET")

	render := srv.router.PathPrefix("/render").Subrouter()
	render.Use(limiter.LimitMiddleware)
	render.HandleFunc("/model.{format:png|svg}", srv.handleRender).Methods("GET")
	render.HandleFunc("/wireframe.png", srv.handleWireframe).Methods("GET")

	api := srv.router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	api.HandleFunc("/model", srv.handleModel).Methods("GET", "POST")

	return srv
}

// Handler returns the root handler with request logging
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		s.router.ServeHTTP(rec, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.settings.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.limiter.Sweep(ctx, sweepInterval, clientIdle)

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.settings.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return <-errc
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
