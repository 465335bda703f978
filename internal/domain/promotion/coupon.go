package promotion

import (
	"strings"
	"time"

	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/pedezap/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"

	"github.com/google/uuid"
)

// DiscountType enumerates how a coupon discounts a purchase
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Typed validation errors surfaced to the storefront
var (
	ErrCouponNotFound  = shared.NewDomainError("COUPON_NOT_FOUND", "Coupon not found")
	ErrCouponInactive  = shared.NewDomainError("COUPON_INACTIVE", "Coupon is not active")
	ErrCouponExpired   = shared.NewDomainError("COUPON_EXPIRED", "Coupon has expired")
	ErrCouponExhausted = shared.NewDomainError("COUPON_EXHAUSTED", "Coupon usage limit reached")
)

// Coupon is a tenant-scoped promotional code. Codes are normalized to
// uppercase so lookups are case-insensitive.
type Coupon struct {
	shared.TenantAggregateRoot
	Code            string           `gorm:"type:varchar(30);not null;uniqueIndex:idx_coupon_tenant_code"`
	Description     string           `gorm:"type:varchar(255)"`
	DiscountType    DiscountType     `gorm:"type:varchar(20);not null"`
	DiscountValue   decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	MinimumPurchase decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	ExpiresAt       *time.Time       `gorm:"index"`
	UsageCap        *int
	UsageCount      int  `gorm:"not null;default:0"`
	Active          bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a coupon. The code is trimmed and uppercased.
func NewCoupon(tenantID uuid.UUID, code string, discountType DiscountType, value decimal.Decimal) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 30 characters")
	}
	if err := validateDiscount(discountType, value); err != nil {
		return nil, err
	}

	coupon := &Coupon{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		DiscountType:        discountType,
		DiscountValue:       value,
		MinimumPurchase:     decimal.Zero,
		Active:              true,
	}

	coupon.AddDomainEvent(NewCouponCreatedEvent(coupon))

	return coupon, nil
}

func validateDiscount(discountType DiscountType, value decimal.Decimal) error {
	switch discountType {
	case DiscountPercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_DISCOUNT", "Percentage discount must be between 0 and 100")
		}
	case DiscountFixed:
		if value.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_DISCOUNT", "Fixed discount must be positive")
		}
	default:
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount type must be percentage or fixed")
	}
	return nil
}

// Update changes the coupon terms
func (c *Coupon) Update(description string, discountType DiscountType, value, minimumPurchase decimal.Decimal, expiresAt *time.Time, usageCap *int) error {
	if err := validateDiscount(discountType, value); err != nil {
		return err
	}
	if minimumPurchase.IsNegative() {
		return shared.NewDomainError("INVALID_MINIMUM", "Minimum purchase cannot be negative")
	}
	if usageCap != nil && *usageCap <= 0 {
		return shared.NewDomainError("INVALID_USAGE_CAP", "Usage cap must be positive")
	}

	c.Description = description
	c.DiscountType = discountType
	c.DiscountValue = value
	c.MinimumPurchase = minimumPurchase
	c.ExpiresAt = expiresAt
	c.UsageCap = usageCap
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCouponUpdatedEvent(c))

	return nil
}

// Toggle flips the active flag
func (c *Coupon) Toggle() {
	c.Active = !c.Active
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsExpired reports whether the coupon passed its expiry
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// IsExhausted reports whether the usage cap is reached
func (c *Coupon) IsExhausted() bool {
	return c.UsageCap != nil && c.UsageCount >= *c.UsageCap
}

// CheckUsable verifies the coupon can be applied to a purchase of the
// given amount at the given time. It has no side effects and never
// touches the usage counter.
func (c *Coupon) CheckUsable(purchaseAmount decimal.Decimal, now time.Time) error {
	if !c.Active {
		return ErrCouponInactive
	}
	if c.IsExpired(now) {
		return ErrCouponExpired
	}
	if c.IsExhausted() {
		return ErrCouponExhausted
	}
	if purchaseAmount.LessThan(c.MinimumPurchase) {
		return shared.NewDomainError("BELOW_MINIMUM_PURCHASE",
			"Minimum purchase of "+valueobject.FormatBRL(c.MinimumPurchase)+" required for this coupon")
	}
	return nil
}

// ComputeDiscount returns the discount for a purchase amount. A fixed
// discount never exceeds the purchase amount.
func (c *Coupon) ComputeDiscount(purchaseAmount decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case DiscountPercentage:
		return purchaseAmount.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixed:
		if c.DiscountValue.GreaterThan(purchaseAmount) {
			return purchaseAmount
		}
		return c.DiscountValue
	}
	return decimal.Zero
}
