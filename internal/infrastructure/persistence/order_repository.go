package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/ordering"
	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// orderNumberRetries bounds the race on the per-tenant sequence when two
// orders are placed at once; the unique index is the final arbiter.
const orderNumberRetries = 3

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID within a tenant, items included
func (r *GormOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds an order by its per-tenant sequential number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number int64) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll returns orders matching the filter, newest first, with the
// total count
func (r *GormOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter ordering.OrderFilter) ([]*ordering.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("tenant_id = ?", tenantID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*ordering.Order
	if err := query.
		Preload("Items").
		Order("number DESC").
		Offset(filter.Offset()).Limit(filter.Limit()).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Save persists the order. On first save the next sequential number for
// the tenant is assigned; the unique index on (tenant_id, number) catches
// races, which are retried with a fresh number.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	if order.Number > 0 {
		return r.db.WithContext(ctx).Save(order).Error
	}

	var lastErr error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var next int64
			if err := tx.Model(&ordering.Order{}).
				Where("tenant_id = ?", order.TenantID).
				Select("COALESCE(MAX(number), 0) + 1").
				Scan(&next).Error; err != nil {
				return err
			}
			order.Number = next
			return tx.Create(order).Error
		})
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
		order.Number = 0
		lastErr = err
	}
	return lastErr
}

// SaveWithLock persists the order guarded by its previous version.
// Items are immutable after placement, so only the order row is updated.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":       order.Status,
			"note":         order.Note,
			"confirmed_at": order.ConfirmedAt,
			"completed_at": order.CompletedAt,
			"cancelled_at": order.CancelledAt,
			"version":      order.Version,
			"updated_at":   order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts orders for a tenant
func (r *GormOrderRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
