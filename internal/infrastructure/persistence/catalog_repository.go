package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormComplementGroupRepository implements catalog.ComplementGroupRepository
// using GORM. Items are loaded eagerly with their group.
type GormComplementGroupRepository struct {
	db *gorm.DB
}

// NewGormComplementGroupRepository creates a new GormComplementGroupRepository
func NewGormComplementGroupRepository(db *gorm.DB) *GormComplementGroupRepository {
	return &GormComplementGroupRepository{db: db}
}

// FindByIDForTenant finds a complement group by ID within a tenant
func (r *GormComplementGroupRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ComplementGroup, error) {
	var group catalog.ComplementGroup
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindByProduct returns the complement groups attached to a product
func (r *GormComplementGroupRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]catalog.ComplementGroup, error) {
	var groups []catalog.ComplementGroup
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// FindAllForTenant returns complement groups for a tenant
func (r *GormComplementGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.ComplementGroup, error) {
	var groups []catalog.ComplementGroup
	query := r.db.WithContext(ctx).Model(&catalog.ComplementGroup{}).
		Preload("Items").
		Where("tenant_id = ?", tenantID)
	if err := applyFilter(query, filter).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Save persists a complement group and its items
func (r *GormComplementGroupRepository) Save(ctx context.Context, group *catalog.ComplementGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete removes a complement group and cascades to its items
func (r *GormComplementGroupRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ComplementGroup{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ComplementGroupRepository = (*GormComplementGroupRepository)(nil)

// GormUnitOfMeasureRepository implements catalog.UnitOfMeasureRepository using GORM
type GormUnitOfMeasureRepository struct {
	db *gorm.DB
}

// NewGormUnitOfMeasureRepository creates a new GormUnitOfMeasureRepository
func NewGormUnitOfMeasureRepository(db *gorm.DB) *GormUnitOfMeasureRepository {
	return &GormUnitOfMeasureRepository{db: db}
}

// FindByIDForTenant finds a unit of measure by ID within a tenant
func (r *GormUnitOfMeasureRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.UnitOfMeasure, error) {
	var unit catalog.UnitOfMeasure
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindAllForTenant returns units of measure for a tenant
func (r *GormUnitOfMeasureRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.UnitOfMeasure, error) {
	var units []catalog.UnitOfMeasure
	query := r.db.WithContext(ctx).Model(&catalog.UnitOfMeasure{}).Where("tenant_id = ?", tenantID)
	if err := applyFilter(query, filter).Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save persists a unit of measure
func (r *GormUnitOfMeasureRepository) Save(ctx context.Context, unit *catalog.UnitOfMeasure) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// Delete removes a unit of measure
func (r *GormUnitOfMeasureRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.UnitOfMeasure{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByAbbreviation reports whether a unit with the abbreviation exists
func (r *GormUnitOfMeasureRepository) ExistsByAbbreviation(ctx context.Context, tenantID uuid.UUID, abbreviation string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.UnitOfMeasure{}).
		Where("tenant_id = ? AND LOWER(abbreviation) = LOWER(?)", tenantID, strings.TrimSpace(abbreviation)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.UnitOfMeasureRepository = (*GormUnitOfMeasureRepository)(nil)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForTenant finds a category by ID within a tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAllForTenant returns categories for a tenant ordered for display
func (r *GormCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save persists a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByName reports whether a category with the name exists in the tenant
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
