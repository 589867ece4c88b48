package repomanager

import (
	"context"
	"database/sql"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/dbx"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/repositories/credentials"
)

// RepositoryManager vends repository implementations and exposes a schema
// migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Credentials(db dbx.DBTX) credentials.Repository
}
