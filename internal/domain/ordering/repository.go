package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	Status OrderStatus
}

// OrderRepository defines the persistence contract for orders
type OrderRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number int64) (*Order, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) ([]*Order, int64, error)
	// Save persists the order. On first save the repository assigns the
	// next sequential number for the tenant.
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists with an optimistic-lock guard on the version
	// column.
	SaveWithLock(ctx context.Context, order *Order) error
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
