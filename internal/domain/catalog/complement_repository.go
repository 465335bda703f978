package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// ComplementGroupRepository defines the persistence interface for complement groups
type ComplementGroupRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ComplementGroup, error)
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]ComplementGroup, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ComplementGroup, error)
	Save(ctx context.Context, group *ComplementGroup) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
