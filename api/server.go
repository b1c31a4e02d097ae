package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg *config.Config, deps Dependencies) (Server, error) {
	if deps.Auth == nil {
		return Server{}, errors.New("auth service is required")
	}

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withAcceptedOrigins(cfg.AcceptedOrigins), withStartupTime(startupTime))

	readTimeout, writeTimeout, idleTimeout := cfg.Timeouts()
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	acceptedOrigins []string
	startupTime     time.Time
}

func withAcceptedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{
		acceptedOrigins: []string{"*"},
		startupTime:     time.Now(),
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(requestLogger)

	// Apply CORS middleware
	chiRouter.Use(CORSCheckMiddleware(router.acceptedOrigins))
	chiRouter.Use(corsMiddleware(router.acceptedOrigins))

	// Initialize all handlers
	handlers := initializeHandlers(deps, router.startupTime)
	authMiddleware := newAuthMiddleware(deps.Auth.Tokens())

	// Setup all route types
	setupOperationalRoutes(chiRouter, handlers)
	setupPublicRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s Server) Run(ctx context.Context) error {
	errChannel := make(chan error, 1)
	go func() {
		log.Info().Msgf("Server started on: %s", s.Addr)
		errChannel <- s.ListenAndServe()
	}()

	select {
	case err := <-errChannel:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.ShutdownGracefully(shutdownTimeout)
		if err := <-errChannel; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
