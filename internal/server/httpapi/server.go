// Package httpapi is the thin inbound HTTP adapter over the auth
// orchestrator. It only extracts request data, calls the service, and maps
// typed failures to status codes; everything interesting happens below it.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/logging"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/auth"
)

// AuthService is the subset of the orchestrator consumed by the handlers.
type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
	ValidateToken(tokenString string) *auth.Introspection
}

// Server serves the inbound auth endpoints.
type Server struct {
	address       string
	auth          AuthService
	logger        logging.Logger
	tokenLifetime time.Duration
}

func NewServer(address string, a AuthService, l logging.Logger, tokenLifetime time.Duration) *Server {
	return &Server{
		address:       address,
		auth:          a,
		logger:        l.With("module", "http_server"),
		tokenLifetime: tokenLifetime,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/v1/auth/validate", s.handleValidate)
	mux.HandleFunc("GET /api/v1/auth/me", s.handleMe)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
