package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/inventory"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementService records stock movements. A movement against a product
// whose ingredient link has auto-deduct enabled cascades to the
// ingredient counter inside the same transaction.
type MovementService struct {
	scope        TransactionScope
	movementRepo inventory.StockMovementRepository
}

// NewMovementService creates a new MovementService
func NewMovementService(scope TransactionScope, movementRepo inventory.StockMovementRepository) *MovementService {
	return &MovementService{
		scope:        scope,
		movementRepo: movementRepo,
	}
}

// RecordMovement applies a movement to a product counter and appends the
// audit rows. All writes commit or roll back together.
func (s *MovementService) RecordMovement(ctx context.Context, tenantID uuid.UUID, req RecordMovementRequest) (*RecordMovementResponse, error) {
	direction := inventory.MovementDirection(req.Direction)
	var response RecordMovementResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, req.ProductID)
		if err != nil {
			return err
		}

		before := product.CurrentStock
		quantity, err := applyToCounter(direction, req.Quantity, before,
			product.IncreaseStock, product.DecreaseStock, product.AdjustStock)
		if err != nil {
			return err
		}

		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return err
		}

		movement, err := inventory.NewProductMovement(tenantID, product.ID, direction,
			quantity, before, product.CurrentStock, req.Note, inventory.SourceManual, req.SourceRef)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Append(ctx, movement); err != nil {
			return err
		}
		response.Movements = append(response.Movements, ToMovementResponse(movement))

		if direction == inventory.MovementOut && product.Ingredient.IsSet() && product.Ingredient.AutoDeduct {
			cascade, err := s.cascade(ctx, repos, tenantID, product, quantity)
			if err != nil {
				return err
			}
			response.Movements = append(response.Movements, ToMovementResponse(cascade))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// cascade deducts the linked ingredient by ratio * quantity and appends
// the second audit row
func (s *MovementService) cascade(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, product *catalog.Product, quantity decimal.Decimal) (*inventory.StockMovement, error) {
	ingredient, err := repos.IngredientRepo().FindByID(ctx, tenantID, *product.Ingredient.IngredientID)
	if err != nil {
		return nil, err
	}

	scaled := quantity.Mul(product.Ingredient.Ratio)
	before := ingredient.CurrentStock
	if err := ingredient.DecreaseStock(scaled); err != nil {
		return nil, err
	}

	if err := repos.IngredientRepo().SaveWithLock(ctx, ingredient); err != nil {
		return nil, err
	}

	movement, err := inventory.NewIngredientMovement(tenantID, ingredient.ID, inventory.MovementOut,
		scaled, before, ingredient.CurrentStock, "auto-deduct from "+product.Code,
		inventory.SourceCascade, product.Code)
	if err != nil {
		return nil, err
	}
	if err := repos.MovementRepo().Append(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// RecordIngredientMovement applies a movement directly to an ingredient
func (s *MovementService) RecordIngredientMovement(ctx context.Context, tenantID uuid.UUID, req RecordIngredientMovementRequest) (*RecordMovementResponse, error) {
	direction := inventory.MovementDirection(req.Direction)
	var response RecordMovementResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ingredient, err := repos.IngredientRepo().FindByID(ctx, tenantID, req.IngredientID)
		if err != nil {
			return err
		}

		before := ingredient.CurrentStock
		quantity, err := applyToCounter(direction, req.Quantity, before,
			ingredient.IncreaseStock, ingredient.DecreaseStock, ingredient.AdjustStock)
		if err != nil {
			return err
		}

		if err := repos.IngredientRepo().SaveWithLock(ctx, ingredient); err != nil {
			return err
		}

		movement, err := inventory.NewIngredientMovement(tenantID, ingredient.ID, direction,
			quantity, before, ingredient.CurrentStock, req.Note, inventory.SourceManual, req.SourceRef)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Append(ctx, movement); err != nil {
			return err
		}
		response.Movements = append(response.Movements, ToMovementResponse(movement))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// applyToCounter mutates a stock counter according to the direction and
// returns the movement quantity. For adjustments the request quantity is
// the new absolute value and the movement quantity is the difference.
func applyToCounter(
	direction inventory.MovementDirection,
	requested, before decimal.Decimal,
	increase, decrease, adjust func(decimal.Decimal) error,
) (decimal.Decimal, error) {
	switch direction {
	case inventory.MovementIn:
		return requested, increase(requested)
	case inventory.MovementOut:
		return requested, decrease(requested)
	case inventory.MovementAdjustment:
		diff := requested.Sub(before).Abs()
		if diff.IsZero() {
			return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Adjustment equals current stock")
		}
		return diff, adjust(requested)
	}
	return decimal.Zero, shared.NewDomainError("INVALID_DIRECTION", "Direction must be in, out or adjustment")
}

// ListMovements returns the paginated movement history
func (s *MovementService) ListMovements(ctx context.Context, tenantID uuid.UUID, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	domainFilter := inventory.MovementFilter{
		Filter:       shared.DefaultFilter(),
		Direction:    inventory.MovementDirection(filter.Direction),
		SourceType:   inventory.SourceDocumentType(filter.SourceType),
		ProductID:    filter.ProductID,
		IngredientID: filter.IngredientID,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	movements, total, err := s.movementRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]MovementResponse, 0, len(movements))
	for _, movement := range movements {
		items = append(items, ToMovementResponse(movement))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}
