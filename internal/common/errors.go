// Package common defines shared constants and sentinel errors used across
// the auth service. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrDuplicateCredential = errors.New("credential already exists")

	// Business-rule errors surfaced to the transport layer.
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors. Expired is distinct so the caller can request
	// re-authentication instead of rejecting outright.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Infrastructure errors. Returned typed, never retried here.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")
	ErrStoreUnavailable     = errors.New("credential store unavailable")

	// ErrCorruptCredential signals a malformed stored hash. It is an
	// internal data-integrity signal and must never reach a caller as
	// anything other than ErrInvalidCredentials.
	ErrCorruptCredential = errors.New("corrupt credential record")
)

// ValidationError reports every field violation found in a request, not just
// the first one. It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
