package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/shared"
)

// CategoryService manages menu categories
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := catalog.NewCategory(tenantID, req.Name, req.SortOrder)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List returns the tenant's categories
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, ToCategoryResponse(&categories[i]))
	}
	return items, nil
}

// Update renames or reorders a category
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.SortOrder); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Toggle flips a category's active flag
func (s *CategoryService) Toggle(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	category.Toggle()

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, tenantID, id)
}
