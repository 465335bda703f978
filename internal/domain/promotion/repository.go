package promotion

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// CouponRepository defines the persistence contract for coupons
type CouponRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Coupon, error)
	// FindByCode resolves an active coupon by its uppercase-normalized
	// code. A disabled coupon is reported as shared.ErrNotFound, the same
	// as a code that never existed.
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Coupon, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Coupon, error)
	Save(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
	// IncrementUsage bumps usage_count by one with a conditional UPDATE
	// guarded by the usage cap, so the counter cannot exceed the cap
	// under concurrent redemptions. Returns ErrCouponExhausted when the
	// guard rejects the update.
	IncrementUsage(ctx context.Context, tenantID, id uuid.UUID) error
}
