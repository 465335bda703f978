package delivery

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// CityRepository defines the persistence contract for cities
type CityRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*City, error)
	// FindByName matches the city name case-insensitively within the tenant.
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*City, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*City, error)
	Save(ctx context.Context, city *City) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// NeighborhoodRepository defines the persistence contract for neighborhoods
type NeighborhoodRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Neighborhood, error)
	// FindByNameInCity matches the neighborhood name case-insensitively
	// within a city. Returns shared.ErrNotFound when absent.
	FindByNameInCity(ctx context.Context, tenantID, cityID uuid.UUID, name string) (*Neighborhood, error)
	FindByCity(ctx context.Context, tenantID, cityID uuid.UUID, filter shared.Filter) ([]*Neighborhood, error)
	FindByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*Neighborhood, error)
	Save(ctx context.Context, neighborhood *Neighborhood) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountByCity(ctx context.Context, tenantID, cityID uuid.UUID) (int64, error)
}

// NeighborhoodGroupRepository defines the persistence contract for fee groups
type NeighborhoodGroupRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*NeighborhoodGroup, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*NeighborhoodGroup, error)
	Save(ctx context.Context, group *NeighborhoodGroup) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
