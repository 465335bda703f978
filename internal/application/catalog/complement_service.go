package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
)

// ComplementService manages complement groups and their items
type ComplementService struct {
	groupRepo   catalog.ComplementGroupRepository
	productRepo catalog.ProductRepository
}

// NewComplementService creates a new ComplementService
func NewComplementService(groupRepo catalog.ComplementGroupRepository, productRepo catalog.ProductRepository) *ComplementService {
	return &ComplementService{
		groupRepo:   groupRepo,
		productRepo: productRepo,
	}
}

// Create adds a complement group to a product
func (s *ComplementService) Create(ctx context.Context, tenantID uuid.UUID, req CreateComplementGroupRequest) (*ComplementGroupResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID); err != nil {
		return nil, err
	}

	group, err := catalog.NewComplementGroup(tenantID, req.ProductID, req.Name, req.MinSelection, req.MaxSelection, req.Required)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToComplementGroupResponse(group)
	return &resp, nil
}

// ListByProduct returns all complement groups of a product
func (s *ComplementService) ListByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]ComplementGroupResponse, error) {
	groups, err := s.groupRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	items := make([]ComplementGroupResponse, 0, len(groups))
	for i := range groups {
		items = append(items, ToComplementGroupResponse(&groups[i]))
	}
	return items, nil
}

// Update changes a group's selection rules
func (s *ComplementService) Update(ctx context.Context, tenantID, groupID uuid.UUID, req UpdateComplementGroupRequest) (*ComplementGroupResponse, error) {
	group, err := s.groupRepo.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	if err := group.Update(req.Name, req.MinSelection, req.MaxSelection, req.Required); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToComplementGroupResponse(group)
	return &resp, nil
}

// Toggle flips a group's active flag
func (s *ComplementService) Toggle(ctx context.Context, tenantID, groupID uuid.UUID) (*ComplementGroupResponse, error) {
	group, err := s.groupRepo.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	group.Toggle()

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToComplementGroupResponse(group)
	return &resp, nil
}

// Delete removes a group and its items
func (s *ComplementService) Delete(ctx context.Context, tenantID, groupID uuid.UUID) error {
	if _, err := s.groupRepo.FindByIDForTenant(ctx, tenantID, groupID); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, tenantID, groupID)
}

// AddItem adds a selectable option to a group
func (s *ComplementService) AddItem(ctx context.Context, tenantID, groupID uuid.UUID, req ComplementItemRequest) (*ComplementGroupResponse, error) {
	group, err := s.groupRepo.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := group.AddItem(req.Name, req.Price); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToComplementGroupResponse(group)
	return &resp, nil
}

// UpdateItem renames or reprices an option
func (s *ComplementService) UpdateItem(ctx context.Context, tenantID, groupID, itemID uuid.UUID, req ComplementItemRequest) (*ComplementGroupResponse, error) {
	group, err := s.groupRepo.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	if err := group.UpdateItem(itemID, req.Name, req.Price); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToComplementGroupResponse(group)
	return &resp, nil
}

// ToggleItem flips an option's availability
func (s *ComplementService) ToggleItem(ctx context.Context, tenantID, groupID, itemID uuid.UUID) (*ComplementGroupResponse, error) {
	group, err := s.groupRepo.FindByIDForTenant(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	if err := group.ToggleItem(itemID); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToComplementGroupResponse(group)
	return &resp, nil
}
