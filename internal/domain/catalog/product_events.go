package catalog

import (
	"github.com/pedezap/backend/internal/domain/shared"
)

// Product event types
const (
	EventTypeProductCreated       = "product.created"
	EventTypeProductUpdated       = "product.updated"
	EventTypeProductStatusChanged = "product.status_changed"
)

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", product.ID, product.TenantID),
		Code:            product.Code,
		Name:            product.Name,
	}
}

// ProductUpdatedEvent is emitted when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", product.ID, product.TenantID),
		Code:            product.Code,
	}
}

// ProductStatusChangedEvent is emitted when a product is activated or deactivated
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code   string        `json:"code"`
	Status ProductStatus `json:"status"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, "Product", product.ID, product.TenantID),
		Code:            product.Code,
		Status:          product.Status,
	}
}
