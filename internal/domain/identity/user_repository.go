package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}
