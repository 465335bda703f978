package identity

import (
	"github.com/pedezap/backend/internal/domain/shared"
)

// Tenant event types
const (
	EventTypeTenantCreated       = "tenant.created"
	EventTypeTenantUpdated       = "tenant.updated"
	EventTypeTenantStatusChanged = "tenant.status_changed"
)

// TenantCreatedEvent is emitted when a tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, "Tenant", tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
		Name:            tenant.Name,
	}
}

// TenantUpdatedEvent is emitted when a tenant is updated
type TenantUpdatedEvent struct {
	shared.BaseDomainEvent
	Slug string `json:"slug"`
}

// NewTenantUpdatedEvent creates a new TenantUpdatedEvent
func NewTenantUpdatedEvent(tenant *Tenant) *TenantUpdatedEvent {
	return &TenantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantUpdated, "Tenant", tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
	}
}

// TenantStatusChangedEvent is emitted when a tenant's status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	Slug   string       `json:"slug"`
	Status TenantStatus `json:"status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(tenant *Tenant) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, "Tenant", tenant.ID, tenant.ID),
		Slug:            tenant.Slug,
		Status:          tenant.Status,
	}
}
