package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// IngredientRepository defines the persistence contract for ingredients
type IngredientRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Ingredient, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Ingredient, error)
	FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]*Ingredient, error)
	Save(ctx context.Context, ingredient *Ingredient) error
	// SaveWithLock persists the ingredient with an optimistic-lock guard
	// on the version column. Returns CONCURRENCY_CONFLICT when another
	// transaction won the race.
	SaveWithLock(ctx context.Context, ingredient *Ingredient) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// MovementFilter narrows movement history queries
type MovementFilter struct {
	shared.Filter
	Direction    MovementDirection
	SourceType   SourceDocumentType
	ProductID    *uuid.UUID
	IngredientID *uuid.UUID
}

// StockMovementRepository is append-only; movements are never updated
// or deleted.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*StockMovement, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter MovementFilter) ([]*StockMovement, int64, error)
}
