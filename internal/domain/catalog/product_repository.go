package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, tenantID, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	// SaveWithLock persists the product guarded by its previous version
	// (optimistic locking). Returns CONCURRENCY_CONFLICT when another
	// transaction won the race.
	SaveWithLock(ctx context.Context, product *Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
