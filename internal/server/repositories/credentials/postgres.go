// Package credentials provides a PostgreSQL-backed repository for the
// credential rows owned by the auth service.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/common"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/dbx"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts one credential row for userID. The unique constraint on
// user_id is the durability backstop against double-signup races; a loser of
// such a race gets common.ErrDuplicateCredential.
func (r *PostgresRepository) Create(ctx context.Context, userID string, passwordHash string) (*models.Credential, error) {
	query :=
		`INSERT INTO credentials (id, user_id, password_hash)
         VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	cred := &models.Credential{
		ID:           uuid.NewString(),
		UserID:       userID,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRowContext(ctx, query,
		cred.ID, cred.UserID, cred.PasswordHash).Scan(&cred.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrDuplicateCredential
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

// GetByUserID returns the credential row for userID, or common.ErrorNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Credential, error) {
	query :=
		`SELECT id, user_id, password_hash, created_at FROM credentials
		 WHERE user_id = $1
		 `

	cred := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cred.ID, &cred.UserID, &cred.PasswordHash, &cred.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}
