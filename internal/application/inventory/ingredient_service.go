package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/inventory"
	"github.com/pedezap/backend/internal/domain/shared"
)

// IngredientService manages the ingredient catalog
type IngredientService struct {
	ingredientRepo inventory.IngredientRepository
}

// NewIngredientService creates a new IngredientService
func NewIngredientService(ingredientRepo inventory.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// Create adds an ingredient with zero stock
func (s *IngredientService) Create(ctx context.Context, tenantID uuid.UUID, req IngredientRequest) (*IngredientResponse, error) {
	exists, err := s.ingredientRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Ingredient with this name already exists")
	}

	ingredient, err := inventory.NewIngredient(tenantID, req.Name, req.UnitID)
	if err != nil {
		return nil, err
	}
	if !req.MinimumStock.IsZero() {
		if err := ingredient.Update(req.Name, req.UnitID, req.MinimumStock); err != nil {
			return nil, err
		}
	}

	if err := s.ingredientRepo.Save(ctx, ingredient); err != nil {
		return nil, err
	}

	resp := ToIngredientResponse(ingredient)
	return &resp, nil
}

// List returns the tenant's ingredients
func (s *IngredientService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]IngredientResponse, error) {
	ingredients, err := s.ingredientRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		items = append(items, ToIngredientResponse(ingredient))
	}
	return items, nil
}

// ListBelowMinimum returns ingredients under their restock threshold
func (s *IngredientService) ListBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]IngredientResponse, error) {
	ingredients, err := s.ingredientRepo.FindBelowMinimum(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		items = append(items, ToIngredientResponse(ingredient))
	}
	return items, nil
}

// Update changes an ingredient's attributes
func (s *IngredientService) Update(ctx context.Context, tenantID, id uuid.UUID, req IngredientRequest) (*IngredientResponse, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := ingredient.Update(req.Name, req.UnitID, req.MinimumStock); err != nil {
		return nil, err
	}

	if err := s.ingredientRepo.Save(ctx, ingredient); err != nil {
		return nil, err
	}

	resp := ToIngredientResponse(ingredient)
	return &resp, nil
}

// Toggle flips an ingredient's active flag
func (s *IngredientService) Toggle(ctx context.Context, tenantID, id uuid.UUID) (*IngredientResponse, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	ingredient.Toggle()

	if err := s.ingredientRepo.Save(ctx, ingredient); err != nil {
		return nil, err
	}

	resp := ToIngredientResponse(ingredient)
	return &resp, nil
}

// Delete removes an ingredient
func (s *IngredientService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.ingredientRepo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.ingredientRepo.Delete(ctx, tenantID, id)
}
