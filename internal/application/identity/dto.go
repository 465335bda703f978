package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// CreateTenantRequest represents a request to provision a new tenant
type CreateTenantRequest struct {
	Slug         string `json:"slug" binding:"required,min=2,max=100"`
	Name         string `json:"name" binding:"required,min=2,max=200"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	OwnerEmail   string `json:"owner_email" binding:"required,email"`
	OwnerName    string `json:"owner_name" binding:"required,min=2,max=100"`
	OwnerPass    string `json:"owner_password" binding:"required,min=8,max=72"`
}

// UpdateTenantRequest represents a request to update a tenant's profile
type UpdateTenantRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=200"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	ContactPhone string `json:"contact_phone" binding:"max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Address      string `json:"address" binding:"max=500"`
}

// UpdateDeliveryDefaultsRequest sets the tenant-level fee fallbacks
type UpdateDeliveryDefaultsRequest struct {
	DefaultFee  decimal.Decimal `json:"default_fee" binding:"required"`
	DefaultTime string          `json:"default_time" binding:"max=20"`
}

// SetDomainRequest binds a custom storefront domain to a tenant
type SetDomainRequest struct {
	Domain string `json:"domain" binding:"required,fqdn"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID           uuid.UUID               `json:"id"`
	Slug         string                  `json:"slug"`
	Name         string                  `json:"name"`
	Domain       string                  `json:"domain,omitempty"`
	Status       string                  `json:"status"`
	DefaultFee   decimal.Decimal         `json:"default_fee"`
	DefaultTime  string                  `json:"default_time"`
	ContactName  string                  `json:"contact_name,omitempty"`
	ContactPhone string                  `json:"contact_phone,omitempty"`
	ContactEmail string                  `json:"contact_email,omitempty"`
	Address      string                  `json:"address,omitempty"`
	LogoURL      string                  `json:"logo_url,omitempty"`
	Settings     identity.TenantSettings `json:"settings"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// StorefrontTenantResponse is the public shape of a tenant, exposed to
// the storefront without contact or operational details
type StorefrontTenantResponse struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	LogoURL     string          `json:"logo_url,omitempty"`
	DefaultFee  decimal.Decimal `json:"default_fee"`
	DefaultTime string          `json:"default_time"`
	WhatsApp    string          `json:"whatsapp,omitempty"`
	Open        string          `json:"opening_hours"`
}

// ToTenantResponse converts a domain Tenant to TenantResponse
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:           t.ID,
		Slug:         t.Slug,
		Name:         t.Name,
		Domain:       t.Domain,
		Status:       string(t.Status),
		DefaultFee:   t.DefaultFee,
		DefaultTime:  t.DefaultTime,
		ContactName:  t.ContactName,
		ContactPhone: t.ContactPhone,
		ContactEmail: t.ContactEmail,
		Address:      t.Address,
		LogoURL:      t.LogoURL,
		Settings:     t.Settings,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToStorefrontTenantResponse converts a tenant to its public shape
func ToStorefrontTenantResponse(t *identity.Tenant) StorefrontTenantResponse {
	return StorefrontTenantResponse{
		ID:          t.ID,
		Slug:        t.Slug,
		Name:        t.Name,
		LogoURL:     t.LogoURL,
		DefaultFee:  t.DefaultFee,
		DefaultTime: t.DefaultTime,
		WhatsApp:    t.Settings.WhatsApp,
		Open:        t.Settings.OpeningHours,
	}
}

// LoginRequest represents a back-office login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token pair
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// CreateUserRequest represents a request to create a back-office user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=owner manager operator"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ModuleResponse represents a licensable module in API responses
type ModuleResponse struct {
	ID      uuid.UUID `json:"id"`
	Code    string    `json:"code"`
	Name    string    `json:"name"`
	Enabled bool      `json:"enabled"`
}
