package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/delivery"
	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCityRepository implements delivery.CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// FindByID finds a city by ID within a tenant
func (r *GormCityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*delivery.City, error) {
	var city delivery.City
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// FindByName matches the city name case-insensitively within the tenant
func (r *GormCityRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*delivery.City, error) {
	var city delivery.City
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, strings.TrimSpace(name)).
		First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// FindAll returns cities for a tenant
func (r *GormCityRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*delivery.City, error) {
	var cities []*delivery.City
	query := r.db.WithContext(ctx).Model(&delivery.City{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(query, filter).Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// Save persists a city
func (r *GormCityRepository) Save(ctx context.Context, city *delivery.City) error {
	return r.db.WithContext(ctx).Save(city).Error
}

// Delete removes a city
func (r *GormCityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&delivery.City{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByName reports whether a city with the name exists in the tenant
func (r *GormCityRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&delivery.City{}).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts cities for a tenant
func (r *GormCityRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&delivery.City{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ delivery.CityRepository = (*GormCityRepository)(nil)

// GormNeighborhoodRepository implements delivery.NeighborhoodRepository using GORM
type GormNeighborhoodRepository struct {
	db *gorm.DB
}

// NewGormNeighborhoodRepository creates a new GormNeighborhoodRepository
func NewGormNeighborhoodRepository(db *gorm.DB) *GormNeighborhoodRepository {
	return &GormNeighborhoodRepository{db: db}
}

// FindByID finds a neighborhood by ID within a tenant
func (r *GormNeighborhoodRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*delivery.Neighborhood, error) {
	var hood delivery.Neighborhood
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&hood).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hood, nil
}

// FindByNameInCity matches the neighborhood name case-insensitively within a city
func (r *GormNeighborhoodRepository) FindByNameInCity(ctx context.Context, tenantID, cityID uuid.UUID, name string) (*delivery.Neighborhood, error) {
	var hood delivery.Neighborhood
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND city_id = ? AND LOWER(name) = LOWER(?)", tenantID, cityID, strings.TrimSpace(name)).
		First(&hood).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hood, nil
}

// FindByCity returns neighborhoods of a city
func (r *GormNeighborhoodRepository) FindByCity(ctx context.Context, tenantID, cityID uuid.UUID, filter shared.Filter) ([]*delivery.Neighborhood, error) {
	var hoods []*delivery.Neighborhood
	query := r.db.WithContext(ctx).Model(&delivery.Neighborhood{}).
		Where("tenant_id = ? AND city_id = ?", tenantID, cityID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(query, filter).Find(&hoods).Error; err != nil {
		return nil, err
	}
	return hoods, nil
}

// FindByGroup returns the neighborhoods assigned to a fee group
func (r *GormNeighborhoodRepository) FindByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*delivery.Neighborhood, error) {
	var hoods []*delivery.Neighborhood
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND group_id = ?", tenantID, groupID).
		Order("name ASC").
		Find(&hoods).Error; err != nil {
		return nil, err
	}
	return hoods, nil
}

// Save persists a neighborhood
func (r *GormNeighborhoodRepository) Save(ctx context.Context, neighborhood *delivery.Neighborhood) error {
	return r.db.WithContext(ctx).Save(neighborhood).Error
}

// Delete removes a neighborhood
func (r *GormNeighborhoodRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&delivery.Neighborhood{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByCity counts neighborhoods in a city
func (r *GormNeighborhoodRepository) CountByCity(ctx context.Context, tenantID, cityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&delivery.Neighborhood{}).
		Where("tenant_id = ? AND city_id = ?", tenantID, cityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ delivery.NeighborhoodRepository = (*GormNeighborhoodRepository)(nil)

// GormNeighborhoodGroupRepository implements delivery.NeighborhoodGroupRepository
type GormNeighborhoodGroupRepository struct {
	db *gorm.DB
}

// NewGormNeighborhoodGroupRepository creates a new GormNeighborhoodGroupRepository
func NewGormNeighborhoodGroupRepository(db *gorm.DB) *GormNeighborhoodGroupRepository {
	return &GormNeighborhoodGroupRepository{db: db}
}

// FindByID finds a fee group by ID within a tenant
func (r *GormNeighborhoodGroupRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*delivery.NeighborhoodGroup, error) {
	var group delivery.NeighborhoodGroup
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindAll returns fee groups for a tenant
func (r *GormNeighborhoodGroupRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*delivery.NeighborhoodGroup, error) {
	var groups []*delivery.NeighborhoodGroup
	query := r.db.WithContext(ctx).Model(&delivery.NeighborhoodGroup{}).Where("tenant_id = ?", tenantID)
	if err := applyFilter(query, filter).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Save persists a fee group
func (r *GormNeighborhoodGroupRepository) Save(ctx context.Context, group *delivery.NeighborhoodGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete removes a fee group
func (r *GormNeighborhoodGroupRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&delivery.NeighborhoodGroup{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ delivery.NeighborhoodGroupRepository = (*GormNeighborhoodGroupRepository)(nil)
