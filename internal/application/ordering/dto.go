package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is one line of a storefront checkout
type CheckoutItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Complements []uuid.UUID     `json:"complements"`
	Note        string          `json:"note" binding:"max=255"`
}

// CheckoutRequest creates a pending order from the storefront
type CheckoutRequest struct {
	CustomerName  string                `json:"customer_name" binding:"required,min=2,max=100"`
	CustomerPhone string                `json:"customer_phone" binding:"required,min=8,max=20"`
	AddressLine   string                `json:"address_line" binding:"max=255"`
	City          string                `json:"city" binding:"max=100"`
	Neighborhood  string                `json:"neighborhood" binding:"max=100"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode    string                `json:"coupon_code" binding:"max=30"`
	Note          string                `json:"note" binding:"max=500"`
}

// AdvanceStatusRequest moves an order along its lifecycle
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed preparing delivering completed cancelled"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Note        string          `json:"note,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        int64               `json:"number"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	AddressLine   string              `json:"address_line,omitempty"`
	City          string              `json:"city,omitempty"`
	Neighborhood  string              `json:"neighborhood,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	CouponCode    string              `json:"coupon_code,omitempty"`
	DeliveryFee   decimal.Decimal     `json:"delivery_fee"`
	FeeSource     string              `json:"fee_source,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	Note          string              `json:"note,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
}

// ToOrderResponse converts a domain order to its API shape
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
			Note:        item.Note,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		AddressLine:   o.Delivery.AddressLine,
		City:          o.Delivery.City,
		Neighborhood:  o.Delivery.Neighborhood,
		Items:         items,
		Subtotal:      o.Subtotal,
		Discount:      o.Coupon.Discount,
		CouponCode:    o.Coupon.Code,
		DeliveryFee:   o.Delivery.Fee,
		FeeSource:     o.Delivery.FeeSource,
		Total:         o.Total,
		Status:        string(o.Status),
		Note:          o.Note,
		CreatedAt:     o.CreatedAt,
		ConfirmedAt:   o.ConfirmedAt,
		CompletedAt:   o.CompletedAt,
		CancelledAt:   o.CancelledAt,
	}
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed preparing delivering completed cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
