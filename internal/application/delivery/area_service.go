package delivery

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/delivery"
	"github.com/pedezap/backend/internal/domain/shared"
)

// AreaService manages the delivery coverage area: cities, neighborhoods
// and fee groups
type AreaService struct {
	cityRepo  delivery.CityRepository
	hoodRepo  delivery.NeighborhoodRepository
	groupRepo delivery.NeighborhoodGroupRepository
}

// NewAreaService creates a new AreaService
func NewAreaService(
	cityRepo delivery.CityRepository,
	hoodRepo delivery.NeighborhoodRepository,
	groupRepo delivery.NeighborhoodGroupRepository,
) *AreaService {
	return &AreaService{
		cityRepo:  cityRepo,
		hoodRepo:  hoodRepo,
		groupRepo: groupRepo,
	}
}

// CreateCity adds a city to the coverage area
func (s *AreaService) CreateCity(ctx context.Context, tenantID uuid.UUID, req CityRequest) (*CityResponse, error) {
	exists, err := s.cityRepo.ExistsByName(ctx, tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "City is already covered")
	}

	city, err := delivery.NewCity(tenantID, req.Name, req.State, req.Fee, req.EstimatedTime)
	if err != nil {
		return nil, err
	}

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}

	resp := ToCityResponse(city, 0)
	return &resp, nil
}

// ListCities returns the covered cities with their neighborhood counts
func (s *AreaService) ListCities(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CityResponse, error) {
	cities, err := s.cityRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CityResponse, 0, len(cities))
	for _, city := range cities {
		count, err := s.hoodRepo.CountByCity(ctx, tenantID, city.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, ToCityResponse(city, count))
	}
	return items, nil
}

// UpdateCity changes a city's fee or estimate
func (s *AreaService) UpdateCity(ctx context.Context, tenantID, id uuid.UUID, req CityRequest) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := city.Update(req.Name, req.Fee, req.EstimatedTime); err != nil {
		return nil, err
	}

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}

	count, err := s.hoodRepo.CountByCity(ctx, tenantID, city.ID)
	if err != nil {
		return nil, err
	}

	resp := ToCityResponse(city, count)
	return &resp, nil
}

// ToggleCity flips a city's active flag
func (s *AreaService) ToggleCity(ctx context.Context, tenantID, id uuid.UUID) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	city.Toggle()

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}

	resp := ToCityResponse(city, 0)
	return &resp, nil
}

// DeleteCity removes a city. Cities with neighborhoods cannot be removed.
func (s *AreaService) DeleteCity(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.cityRepo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}

	count, err := s.hoodRepo.CountByCity(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CITY_IN_USE", "Remove the city's neighborhoods first")
	}

	return s.cityRepo.Delete(ctx, tenantID, id)
}

// CreateNeighborhood adds a neighborhood to a covered city
func (s *AreaService) CreateNeighborhood(ctx context.Context, tenantID uuid.UUID, req NeighborhoodRequest) (*NeighborhoodResponse, error) {
	if _, err := s.cityRepo.FindByID(ctx, tenantID, req.CityID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CITY", "City is not covered")
		}
		return nil, err
	}

	existing, err := s.hoodRepo.FindByNameInCity(ctx, tenantID, req.CityID, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Neighborhood already exists in this city")
	}

	hood, err := delivery.NewNeighborhood(tenantID, req.CityID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.hoodRepo.Save(ctx, hood); err != nil {
		return nil, err
	}

	resp := ToNeighborhoodResponse(hood)
	return &resp, nil
}

// ListNeighborhoods returns the neighborhoods of a city
func (s *AreaService) ListNeighborhoods(ctx context.Context, tenantID, cityID uuid.UUID, filter shared.Filter) ([]NeighborhoodResponse, error) {
	hoods, err := s.hoodRepo.FindByCity(ctx, tenantID, cityID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]NeighborhoodResponse, 0, len(hoods))
	for _, hood := range hoods {
		items = append(items, ToNeighborhoodResponse(hood))
	}
	return items, nil
}

// SetNeighborhoodFee sets or clears a personalized fee
func (s *AreaService) SetNeighborhoodFee(ctx context.Context, tenantID, id uuid.UUID, req NeighborhoodFeeRequest) (*NeighborhoodResponse, error) {
	hood, err := s.hoodRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Fee == nil {
		hood.ClearPersonalizedFee()
	} else if err := hood.SetPersonalizedFee(*req.Fee, req.EstimatedTime); err != nil {
		return nil, err
	}

	if err := s.hoodRepo.Save(ctx, hood); err != nil {
		return nil, err
	}

	resp := ToNeighborhoodResponse(hood)
	return &resp, nil
}

// AssignNeighborhoodGroup moves the neighborhood into or out of a group
func (s *AreaService) AssignNeighborhoodGroup(ctx context.Context, tenantID, id uuid.UUID, req NeighborhoodGroupAssignRequest) (*NeighborhoodResponse, error) {
	hood, err := s.hoodRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.GroupID == nil {
		hood.RemoveFromGroup()
	} else {
		if _, err := s.groupRepo.FindByID(ctx, tenantID, *req.GroupID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_GROUP", "Fee group not found")
			}
			return nil, err
		}
		if err := hood.AssignGroup(*req.GroupID); err != nil {
			return nil, err
		}
	}

	if err := s.hoodRepo.Save(ctx, hood); err != nil {
		return nil, err
	}

	resp := ToNeighborhoodResponse(hood)
	return &resp, nil
}

// ToggleNeighborhood flips a neighborhood's active flag
func (s *AreaService) ToggleNeighborhood(ctx context.Context, tenantID, id uuid.UUID) (*NeighborhoodResponse, error) {
	hood, err := s.hoodRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	hood.Toggle()

	if err := s.hoodRepo.Save(ctx, hood); err != nil {
		return nil, err
	}

	resp := ToNeighborhoodResponse(hood)
	return &resp, nil
}

// DeleteNeighborhood removes a neighborhood
func (s *AreaService) DeleteNeighborhood(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.hoodRepo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.hoodRepo.Delete(ctx, tenantID, id)
}

// CreateGroup adds a fee group
func (s *AreaService) CreateGroup(ctx context.Context, tenantID uuid.UUID, req GroupRequest) (*GroupResponse, error) {
	group, err := delivery.NewNeighborhoodGroup(tenantID, req.Name, req.Fee, req.EstimatedTime)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToGroupResponse(group)
	return &resp, nil
}

// ListGroups returns the tenant's fee groups
func (s *AreaService) ListGroups(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]GroupResponse, error) {
	groups, err := s.groupRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		items = append(items, ToGroupResponse(group))
	}
	return items, nil
}

// UpdateGroup changes a group's fee or estimate
func (s *AreaService) UpdateGroup(ctx context.Context, tenantID, id uuid.UUID, req GroupRequest) (*GroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := group.Update(req.Name, req.Fee, req.EstimatedTime); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	resp := ToGroupResponse(group)
	return &resp, nil
}

// DeleteGroup removes a fee group and detaches its neighborhoods
func (s *AreaService) DeleteGroup(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.groupRepo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}

	hoods, err := s.hoodRepo.FindByGroup(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for _, hood := range hoods {
		hood.RemoveFromGroup()
		if err := s.hoodRepo.Save(ctx, hood); err != nil {
			return err
		}
	}

	return s.groupRepo.Delete(ctx, tenantID, id)
}
