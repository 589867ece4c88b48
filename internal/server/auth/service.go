// Package auth contains the signup and signin orchestration. It composes the
// password hasher, token service, user-directory client and credential store,
// and owns the cross-service consistency policy between the remote directory
// and the local credential table.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/logging"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/directory"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/repositories/repomanager"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/token"
)

// RoleUser is the role assigned to every newly signed-up user.
const RoleUser = "USER"

// Directory is the gateway to the remote user-directory, the service of
// record for user profiles.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*directory.User, error)
	Create(ctx context.Context, profile directory.NewUser) (string, error)
}

// PasswordHasher derives and verifies salted password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, encoded string) (bool, error)
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	Issue(userID, email, role string) (string, error)
	Verify(tokenString string) (*token.Claims, error)
}

// Introspection is the result of verifying a session token on behalf of the
// gateway. It is a value, never an error: an unusable token is a normal
// answer to the question being asked.
type Introspection struct {
	Valid  bool
	UserID string
	Email  string
	Role   string
	Reason string
}

// Service implements the signup and signin flows. Each request is one
// independent unit of work; the only shared state is the read-only
// configuration captured at construction.
type Service struct {
	db           *sql.DB
	repos        repomanager.RepositoryManager
	dir          Directory
	hasher       PasswordHasher
	tokens       TokenService
	logger       logging.Logger
	storeTimeout time.Duration
}

// NewService constructs the orchestrator. storeTimeout bounds every call to
// the credential store.
func NewService(db *sql.DB, repos repomanager.RepositoryManager, dir Directory, hasher PasswordHasher, tokens TokenService, logger logging.Logger, storeTimeout time.Duration) *Service {
	return &Service{
		db:           db,
		repos:        repos,
		dir:          dir,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
		storeTimeout: storeTimeout,
	}
}

// Signup registers a new user: it checks the directory for the email, creates
// the remote profile, persists the password hash locally, and returns a
// session token.
//
// Known consistency gap: the remote profile create (step 3) and the local
// credential insert (step 5) are not atomic. If the insert fails after the
// remote create succeeded, a profile exists in the directory with no local
// credential; this service performs no compensation and returns the store
// failure. The orphaned directory id is logged.
func (s *Service) Signup(ctx context.Context, email, password, name string) (string, error) {
	_, err := s.dir.FindByEmail(ctx, email)
	if err == nil {
		return "", common.ErrEmailInUse
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", err
	}

	if violations := ValidateSignup(email, password, name); len(violations) > 0 {
		return "", &common.ValidationError{Violations: violations}
	}

	userID, err := s.dir.Create(ctx, directory.NewUser{Email: email, Name: name, Role: RoleUser})
	if err != nil {
		// No local side effect yet; the failure is terminal for the request.
		return "", err
	}

	encoded, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.repos.Credentials(s.db).Create(cctx, userID, encoded); err != nil {
		s.logger.Error(ctx, "credential save failed after directory create, remote profile is orphaned",
			"user_id", userID, "error", err)
		return "", s.storeError(err)
	}

	return s.tokens.Issue(userID, email, RoleUser)
}

// Signin authenticates an existing user and returns a session token.
//
// Every caller-visible authentication failure collapses to
// common.ErrInvalidCredentials: an unknown email, a missing credential row, a
// wrong password and a corrupt stored hash are indistinguishable from the
// outside. The distinguishing cause stays in the internal logs.
func (s *Service) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}

	cctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	cred, err := s.repos.Credentials(s.db).GetByUserID(cctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "signin for user without credential record", "user_id", user.ID)
			return "", common.ErrInvalidCredentials
		}
		return "", s.storeError(err)
	}

	ok, err := s.hasher.Verify(password, cred.PasswordHash)
	if err != nil {
		if errors.Is(err, common.ErrCorruptCredential) {
			s.logger.Error(ctx, "stored credential is corrupt", "user_id", user.ID, "error", err)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Email, user.Role)
}

// ValidateToken verifies a session token on behalf of the gateway and reports
// the embedded claims.
func (s *Service) ValidateToken(tokenString string) *Introspection {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return &Introspection{Valid: false, Reason: err.Error()}
	}
	return &Introspection{
		Valid:  true,
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// storeError maps credential-store failures to the error taxonomy. Duplicate
// rows keep their typed identity; everything else becomes a typed
// store-unavailable failure rather than an unhandled fault.
func (s *Service) storeError(err error) error {
	if errors.Is(err, common.ErrDuplicateCredential) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
