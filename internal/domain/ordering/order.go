package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// statusTransitions maps each status to the statuses it may move to
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusCompleted, OrderStatusCancelled},
}

// OrderItem snapshots a product at purchase time. Price and name are
// frozen so later catalog edits do not rewrite order history.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(100);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Complements string          `gorm:"type:text"` // JSON snapshot of chosen complement items
	Note        string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns quantity times unit price
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}

// DeliveryInfo snapshots the resolved delivery destination and fee
type DeliveryInfo struct {
	AddressLine  string          `gorm:"type:varchar(255)"`
	City         string          `gorm:"type:varchar(100)"`
	Neighborhood string          `gorm:"type:varchar(100)"`
	Fee          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FeeSource    string          `gorm:"type:varchar(20)"`
	Estimate     string          `gorm:"type:varchar(20)"`
}

// CouponSnapshot freezes the coupon terms applied to an order
type CouponSnapshot struct {
	CouponID *uuid.UUID      `gorm:"type:uuid"`
	Code     string          `gorm:"type:varchar(30)"`
	Discount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// Applied reports whether a coupon was used on the order
func (c CouponSnapshot) Applied() bool {
	return c.CouponID != nil
}

// Order is the tenant-scoped purchase aggregate. Numbers are sequential
// per tenant and assigned by the repository on first save.
type Order struct {
	shared.TenantAggregateRoot
	Number        int64          `gorm:"not null;uniqueIndex:idx_order_tenant_number"`
	CustomerName  string         `gorm:"type:varchar(100);not null"`
	CustomerPhone string         `gorm:"type:varchar(20);not null"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Delivery      DeliveryInfo   `gorm:"embedded;embeddedPrefix:delivery_"`
	Coupon        CouponSnapshot `gorm:"embedded;embeddedPrefix:coupon_"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Note          string          `gorm:"type:varchar(500)"`
	ConfirmedAt   *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order from already validated snapshots.
// Subtotal and total are computed here so they always agree with the
// items, fee and discount recorded on the order.
func NewOrder(tenantID uuid.UUID, customerName, customerPhone string, items []OrderItem, delivery DeliveryInfo, coupon CouponSnapshot, note string) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if strings.TrimSpace(customerPhone) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer phone cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must have at least one item")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	if coupon.Discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if delivery.Fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}

	total := subtotal.Sub(coupon.Discount).Add(delivery.Fee)
	if total.IsNegative() {
		total = decimal.Zero
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerName:        customerName,
		CustomerPhone:       customerPhone,
		Items:               items,
		Delivery:            delivery,
		Coupon:              coupon,
		Subtotal:            subtotal,
		Total:               total,
		Status:              OrderStatusPending,
		Note:                note,
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// CanTransitionTo reports whether the status change is permitted
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range statusTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo advances the order along the lifecycle
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot change order status from "+string(o.Status)+" to "+string(target))
	}

	o.Status = target
	now := time.Now()
	switch target {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusCompleted:
		o.CompletedAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o))

	return nil
}

// IsOpen reports whether the order is still in flight
func (o *Order) IsOpen() bool {
	return o.Status != OrderStatusCompleted && o.Status != OrderStatusCancelled
}
