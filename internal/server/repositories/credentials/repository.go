package credentials

import (
	"context"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/models"
)

// Repository persists credential rows. There are deliberately no update or
// delete operations: a credential is written once at signup.
type Repository interface {
	Create(ctx context.Context, userID string, passwordHash string) (*models.Credential, error)
	GetByUserID(ctx context.Context, userID string) (*models.Credential, error)
}
