package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/construction-site-backend/auth"
	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/services"
	"github.com/rs/zerolog/log"
)

// Dependencies are the services the HTTP layer calls into.
type Dependencies struct {
	Catalog *content.Catalog
	Auth    *auth.Service
	Contact *services.ContactService
	Sweeper *services.OrphanSweeper
	DB      Pinger
	// AdminUI is mounted at /admin when non-nil.
	AdminUI http.Handler
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	handler := NewRouter(deps, withConfig(c), withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config        map[string]string
	startupTime   time.Time
	secureCookies bool
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// NewRouter builds the full route tree.
func NewRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}
	router.secureCookies = config.GetBool(router.config, "SECURE_COOKIES", config.GetString(router.config, "ENVIRONMENT", "dev") != "dev")

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	// Initialize all handlers
	handlers := initializeHandlers(deps, &router)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(deps.Auth)

	// Apply CORS middleware
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	chiRouter.Group(func(r chi.Router) {
		if config.GetBool(router.config, "REQUEST_LOGGING", true) {
			r.Use(ColoredHTTPLoggingMiddleware)
		}
		setupPublicRoutes(r, handlers)
		setupAdminRoutes(r, handlers, authMiddleware)
		mountAdminUI(r, deps.AdminUI)
	})

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
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
