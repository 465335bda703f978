package promotion

import (
	"github.com/pedezap/backend/internal/domain/shared"
)

// Coupon event types
const (
	EventTypeCouponCreated  = "coupon.created"
	EventTypeCouponUpdated  = "coupon.updated"
	EventTypeCouponRedeemed = "coupon.redeemed"
)

// CouponCreatedEvent is emitted when a coupon is created
type CouponCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewCouponCreatedEvent creates a new CouponCreatedEvent
func NewCouponCreatedEvent(coupon *Coupon) *CouponCreatedEvent {
	return &CouponCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponCreated, "Coupon", coupon.ID, coupon.TenantID),
		Code:            coupon.Code,
	}
}

// CouponUpdatedEvent is emitted when a coupon's terms change
type CouponUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewCouponUpdatedEvent creates a new CouponUpdatedEvent
func NewCouponUpdatedEvent(coupon *Coupon) *CouponUpdatedEvent {
	return &CouponUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponUpdated, "Coupon", coupon.ID, coupon.TenantID),
		Code:            coupon.Code,
	}
}

// CouponRedeemedEvent is emitted when an order consumes a coupon use
type CouponRedeemedEvent struct {
	shared.BaseDomainEvent
	Code       string `json:"code"`
	UsageCount int    `json:"usage_count"`
}

// NewCouponRedeemedEvent creates a new CouponRedeemedEvent
func NewCouponRedeemedEvent(coupon *Coupon) *CouponRedeemedEvent {
	return &CouponRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponRedeemed, "Coupon", coupon.ID, coupon.TenantID),
		Code:            coupon.Code,
		UsageCount:      coupon.UsageCount,
	}
}
