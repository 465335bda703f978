package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/inventory"
	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormIngredientRepository implements inventory.IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByID finds an ingredient by ID within a tenant
func (r *GormIngredientRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Ingredient, error) {
	var ingredient inventory.Ingredient
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindAll returns ingredients for a tenant
func (r *GormIngredientRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*inventory.Ingredient, error) {
	var ingredients []*inventory.Ingredient
	query := r.db.WithContext(ctx).Model(&inventory.Ingredient{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(query, filter).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindBelowMinimum returns ingredients whose counter dropped below the
// configured minimum
func (r *GormIngredientRepository) FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]*inventory.Ingredient, error) {
	var ingredients []*inventory.Ingredient
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND minimum_stock > 0 AND current_stock < minimum_stock", tenantID).
		Order("name ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Save persists an ingredient
func (r *GormIngredientRepository) Save(ctx context.Context, ingredient *inventory.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// SaveWithLock persists the ingredient guarded by its previous version
func (r *GormIngredientRepository) SaveWithLock(ctx context.Context, ingredient *inventory.Ingredient) error {
	result := r.db.WithContext(ctx).
		Model(ingredient).
		Where("id = ? AND version = ?", ingredient.ID, ingredient.Version-1).
		Updates(map[string]interface{}{
			"name":          ingredient.Name,
			"unit_id":       ingredient.UnitID,
			"current_stock": ingredient.CurrentStock,
			"minimum_stock": ingredient.MinimumStock,
			"active":        ingredient.Active,
			"version":       ingredient.Version,
			"updated_at":    ingredient.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes an ingredient
func (r *GormIngredientRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Ingredient{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByName reports whether an ingredient with the name exists
func (r *GormIngredientRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Ingredient{}).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts ingredients for a tenant
func (r *GormIngredientRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Ingredient{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.IngredientRepository = (*GormIngredientRepository)(nil)

// GormStockMovementRepository implements inventory.StockMovementRepository.
// Movements are append-only audit rows; there is no update or delete path.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a movement row
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by ID within a tenant
func (r *GormStockMovementRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindAll returns movement history matching the filter, newest first,
// along with the total count
func (r *GormStockMovementRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter inventory.MovementFilter) ([]*inventory.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ?", tenantID)

	if filter.Direction != "" {
		query = query.Where("direction = ?", filter.Direction)
	}
	if filter.SourceType != "" {
		query = query.Where("source_type = ?", filter.SourceType)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.IngredientID != nil {
		query = query.Where("ingredient_id = ?", *filter.IngredientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []*inventory.StockMovement
	if err := query.
		Order("occurred_at DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&movements).Error; err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
