package ordering

import (
	"github.com/pedezap/backend/internal/domain/shared"
)

// Order event types
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is emitted when a storefront checkout creates an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	Number   int64  `json:"number"`
	Customer string `json:"customer"`
	Total    string `json:"total"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", order.ID, order.TenantID),
		Number:          order.Number,
		Customer:        order.CustomerName,
		Total:           order.Total.StringFixed(2),
	}
}

// OrderStatusChangedEvent is emitted on every lifecycle transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number int64       `json:"number"`
	Status OrderStatus `json:"status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", order.ID, order.TenantID),
		Number:          order.Number,
		Status:          order.Status,
	}
}
