package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/shared"
)

// UnitService manages units of measure
type UnitService struct {
	unitRepo catalog.UnitOfMeasureRepository
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitOfMeasureRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

// Create adds a unit of measure
func (s *UnitService) Create(ctx context.Context, tenantID uuid.UUID, req UnitRequest) (*UnitResponse, error) {
	exists, err := s.unitRepo.ExistsByAbbreviation(ctx, tenantID, req.Abbreviation)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Unit with this abbreviation already exists")
	}

	unit, err := catalog.NewUnitOfMeasure(tenantID, req.Name, req.Abbreviation)
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	resp := ToUnitResponse(unit)
	return &resp, nil
}

// List returns the tenant's units
func (s *UnitService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UnitResponse, error) {
	units, err := s.unitRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UnitResponse, 0, len(units))
	for i := range units {
		items = append(items, ToUnitResponse(&units[i]))
	}
	return items, nil
}

// Update renames a unit
func (s *UnitService) Update(ctx context.Context, tenantID, id uuid.UUID, req UnitRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := unit.Update(req.Name, req.Abbreviation); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	resp := ToUnitResponse(unit)
	return &resp, nil
}

// Toggle flips a unit's active flag
func (s *UnitService) Toggle(ctx context.Context, tenantID, id uuid.UUID) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	unit.Toggle()

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	resp := ToUnitResponse(unit)
	return &resp, nil
}

// Delete removes a unit
func (s *UnitService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.unitRepo.Delete(ctx, tenantID, id)
}
