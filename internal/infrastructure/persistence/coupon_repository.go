package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/promotion"
	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCouponRepository implements promotion.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByID finds a coupon by ID within a tenant
func (r *GormCouponRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*promotion.Coupon, error) {
	var coupon promotion.Coupon
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindByCode resolves an active coupon by its uppercase-normalized code.
// Disabled coupons are filtered out here so a toggled-off code behaves
// exactly like one that never existed.
func (r *GormCouponRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*promotion.Coupon, error) {
	var coupon promotion.Coupon
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ? AND active = ?", tenantID, strings.ToUpper(strings.TrimSpace(code)), true).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindAll returns coupons for a tenant
func (r *GormCouponRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*promotion.Coupon, error) {
	var coupons []*promotion.Coupon
	query := r.db.WithContext(ctx).Model(&promotion.Coupon{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("code ILIKE ?", "%"+strings.ToUpper(filter.Search)+"%")
	}
	if err := applyFilter(query, filter).Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Save persists a coupon
func (r *GormCouponRepository) Save(ctx context.Context, coupon *promotion.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// Delete removes a coupon
func (r *GormCouponRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&promotion.Coupon{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode reports whether a coupon with the code exists in the tenant
func (r *GormCouponRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&promotion.Coupon{}).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts coupons for a tenant
func (r *GormCouponRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&promotion.Coupon{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementUsage bumps usage_count with a conditional UPDATE guarded by
// the usage cap. Concurrent redemptions race on the guard, never past it.
func (r *GormCouponRepository) IncrementUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&promotion.Coupon{}).
		Where("tenant_id = ? AND id = ? AND (usage_cap IS NULL OR usage_count < usage_cap)", tenantID, id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the coupon does not exist or the cap is reached.
		exists, err := r.exists(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return promotion.ErrCouponExhausted
	}
	return nil
}

func (r *GormCouponRepository) exists(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&promotion.Coupon{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ promotion.CouponRepository = (*GormCouponRepository)(nil)
