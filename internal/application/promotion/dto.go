package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/promotion"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest creates a promotional coupon
type CreateCouponRequest struct {
	Code            string          `json:"code" binding:"required,min=1,max=30"`
	Description     string          `json:"description" binding:"max=255"`
	DiscountType    string          `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue   decimal.Decimal `json:"discount_value" binding:"required"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
	ExpiresAt       *time.Time      `json:"expires_at"`
	UsageCap        *int            `json:"usage_cap"`
}

// UpdateCouponRequest changes a coupon's terms
type UpdateCouponRequest struct {
	Description     string          `json:"description" binding:"max=255"`
	DiscountType    string          `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue   decimal.Decimal `json:"discount_value" binding:"required"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
	ExpiresAt       *time.Time      `json:"expires_at"`
	UsageCap        *int            `json:"usage_cap"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Description     string          `json:"description,omitempty"`
	DiscountType    string          `json:"discount_type"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	MinimumPurchase decimal.Decimal `json:"minimum_purchase"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	UsageCap        *int            `json:"usage_cap,omitempty"`
	UsageCount      int             `json:"usage_count"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToCouponResponse converts a domain coupon to its API shape
func ToCouponResponse(c *promotion.Coupon) CouponResponse {
	return CouponResponse{
		ID:              c.ID,
		Code:            c.Code,
		Description:     c.Description,
		DiscountType:    string(c.DiscountType),
		DiscountValue:   c.DiscountValue,
		MinimumPurchase: c.MinimumPurchase,
		ExpiresAt:       c.ExpiresAt,
		UsageCap:        c.UsageCap,
		UsageCount:      c.UsageCount,
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
	}
}

// ValidateCouponRequest asks whether a coupon applies to a purchase
type ValidateCouponRequest struct {
	Code           string          `json:"code" binding:"required"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount" binding:"required"`
}

// ValidateCouponResponse carries the computed discount for a valid coupon
type ValidateCouponResponse struct {
	CouponID      uuid.UUID       `json:"coupon_id"`
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
}
