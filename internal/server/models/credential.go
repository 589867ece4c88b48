// Package models holds the persisted data structures of the auth service.
package models

import "time"

// Credential is the secret material for exactly one user. UserID is assigned
// by the remote user-directory; at most one row exists per user. Rows are
// written once at signup and never updated or deleted.
type Credential struct {
	ID           string
	UserID       string
	PasswordHash string
	CreatedAt    time.Time
}
