package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
	TenantStatusSuspended TenantStatus = "suspended" // Suspended due to payment/violation issues
)

// DefaultDeliveryTime is the fallback delivery estimate (in minutes) used when
// neither the neighborhood, group nor city define one.
const DefaultDeliveryTime = "30-45"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// TenantSettings holds configurable storefront settings for a tenant
type TenantSettings struct {
	Currency     string `json:"currency"`      // Currency code for display
	Timezone     string `json:"timezone"`      // Tenant timezone
	Locale       string `json:"locale"`        // Tenant locale (e.g., pt-BR)
	OpeningHours string `json:"opening_hours"` // JSON object of opening hours per weekday
	WhatsApp     string `json:"whats_app"`     // WhatsApp number shown on the storefront
}

// DefaultTenantSettings returns the default settings for a new tenant
func DefaultTenantSettings() TenantSettings {
	return TenantSettings{
		Currency:     "BRL",
		Timezone:     "America/Sao_Paulo",
		Locale:       "pt-BR",
		OpeningHours: "{}",
	}
}

// Tenant represents a restaurant deployment in the multi-tenant system.
// It is the aggregate root for tenant-related operations and the root of
// all data scoping: every other aggregate carries its ID.
type Tenant struct {
	shared.BaseAggregateRoot
	Slug            string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Domain          string          `gorm:"type:varchar(200);uniqueIndex"` // Custom domain for the storefront
	Status          TenantStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	DefaultFee      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Fallback delivery fee
	DefaultTime     string          `gorm:"type:varchar(20);not null;default:'30-45'"`
	ContactName     string          `gorm:"type:varchar(100)"`
	ContactPhone    string          `gorm:"type:varchar(50)"`
	ContactEmail    string          `gorm:"type:varchar(200)"`
	Address         string          `gorm:"type:text"`
	LogoURL         string          `gorm:"type:varchar(500)"`
	Settings        TenantSettings  `gorm:"embedded;embeddedPrefix:settings_"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant with required fields
func NewTenant(slug, name string) (*Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if err := validateTenantSlug(slug); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              slug,
		Name:              name,
		Status:            TenantStatusActive,
		DefaultFee:        decimal.Zero,
		DefaultTime:       DefaultDeliveryTime,
		Settings:          DefaultTenantSettings(),
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Update updates the tenant's basic information
func (t *Tenant) Update(name, contactName, contactPhone, contactEmail, address string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}

	t.Name = name
	t.ContactName = contactName
	t.ContactPhone = contactPhone
	t.ContactEmail = contactEmail
	t.Address = address
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// SetDomain sets the custom storefront domain
func (t *Tenant) SetDomain(domain string) error {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain != "" && len(domain) > 200 {
		return shared.NewDomainError("INVALID_DOMAIN", "Domain cannot exceed 200 characters")
	}

	t.Domain = domain
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// SetDeliveryDefaults sets the fallback delivery fee and time estimate
func (t *Tenant) SetDeliveryDefaults(fee decimal.Decimal, estimatedTime string) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Default delivery fee cannot be negative")
	}
	if estimatedTime == "" {
		estimatedTime = DefaultDeliveryTime
	}

	t.DefaultFee = fee
	t.DefaultTime = estimatedTime
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// Activate sets the tenant status to active
func (t *Tenant) Activate() {
	if t.Status == TenantStatusActive {
		return
	}
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))
}

// Deactivate sets the tenant status to inactive
func (t *Tenant) Deactivate() {
	if t.Status == TenantStatusInactive {
		return
	}
	t.Status = TenantStatusInactive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))
}

// IsActive returns true if the tenant can serve requests
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

func validateTenantSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug cannot exceed 100 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Tenant slug can only contain lowercase letters, numbers and hyphens")
	}
	return nil
}

func validateTenantName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}
