package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
)

// accessTokenCookie is the cookie the gateway reads the session token from.
const accessTokenCookie = "access_token"

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type validateUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type validateResponse struct {
	Valid   bool          `json:"valid"`
	User    *validateUser `json:"user,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request body"})
		return
	}

	token, err := s.auth.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setTokenCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "User created successfully",
		"access_token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed request body"})
		return
	}

	token, err := s.auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged in successfully"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"message": "Ok"})
}

// handleValidate answers the gateway's token introspection. The token may
// arrive in the access_token cookie or an Authorization bearer header.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, validateResponse{Valid: false, Message: "No token provided"})
		return
	}

	result := s.auth.ValidateToken(token)
	if !result.Valid {
		writeJSON(w, http.StatusOK, validateResponse{Valid: false, Message: result.Reason})
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Valid: true,
		User:  &validateUser{ID: result.UserID, Email: result.Email, Role: result.Role},
	})
}

// handleMe returns the profile claims of the authenticated caller. Unlike
// validate, which always answers 200 with a valid/invalid verdict for the
// gateway, an unusable token here is the caller's problem and gets a 401.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}

	result := s.auth.ValidateToken(token)
	if !result.Valid {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, validateUser{
		ID:    result.UserID,
		Email: result.Email,
		Role:  result.Role,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(accessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func (s *Server) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeError maps the service error taxonomy to status codes. Infrastructure
// failures come back 503 so the gateway can answer "try again".
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid input",
			"errors":  ve.Violations,
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrEmailInUse):
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Email already in use"})
	case errors.Is(err, common.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid input"})
	case errors.Is(err, common.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
	case errors.Is(err, common.ErrDirectoryUnavailable), errors.Is(err, common.ErrStoreUnavailable),
		errors.Is(err, common.ErrDuplicateCredential):
		s.logger.Error(r.Context(), "request failed on a dependency", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"message": "Service temporarily unavailable"})
	default:
		s.logger.Error(r.Context(), "unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
