// Package api provides the HTTP API server and handlers for the club
// directory.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/clubreviewapp/clubreview-server/internal/http/response"
	"github.com/clubreviewapp/clubreview-server/internal/logger"
	"github.com/clubreviewapp/clubreview-server/internal/ratelimit"
	"github.com/clubreviewapp/clubreview-server/internal/service"
	"github.com/clubreviewapp/clubreview-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	clubService *service.ClubService
	tagService  *service.TagService
	userService *service.UserService
	authService *service.AuthService
	validator   *validation.Validator
	authLimiter *ratelimit.KeyedRateLimiter
	router      *chi.Mux
	logger      *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	clubService *service.ClubService,
	tagService *service.TagService,
	userService *service.UserService,
	authService *service.AuthService,
	validator *validation.Validator,
	authLimiter *ratelimit.KeyedRateLimiter,
	log *logger.Logger,
) *Server {
	s := &Server{
		clubService: clubService,
		tagService:  tagService,
		userService: userService,
		authService: authService,
		validator:   validator,
		authLimiter: authLimiter,
		router:      chi.NewRouter(),
		logger:      log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleWelcome)

		// Clubs.
		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", s.handleListClubs)
			r.Post("/", s.handleCreateClub)
			r.Get("/{query}", s.handleSearchClubs)
			r.With(s.requireAuth).Put("/{code}", s.handleUpdateClub)
		})

		// Users.
		r.Get("/users/{handle}", s.handleGetUser)

		// Tags.
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Get("/{name}", s.handleGetTag)
		})
	})

	// Auth endpoints. Signup and login take the brunt of abuse, so they
	// sit behind a per-IP limiter.
	s.router.Route("/auth", func(r chi.Router) {
		r.With(s.limitAuthAttempts).Post("/signup", s.handleSignup)
		r.With(s.limitAuthAttempts).Post("/login", s.handleLogin)
		r.With(s.requireAuth).Post("/logout", s.handleLogout)
		r.With(s.requireAuth).Get("/profile", s.handleGetOwnProfile)
		r.With(s.requireAuth).Put("/profile", s.handleUpdateProfile)
	})
}

// handleWelcome greets API visitors.
func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"message": "Welcome to the club directory!"}, s.logger.Logger)
}

// handleHealthCheck reports liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"status": "healthy"}, s.logger.Logger)
}
