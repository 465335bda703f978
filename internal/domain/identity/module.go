package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// Module represents a licensable back-office module (orders, stock, coupons...).
// Modules are global; tenants enable them through TenantModule associations.
type Module struct {
	shared.BaseAggregateRoot
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Module) TableName() string {
	return "modules"
}

// NewModule creates a new module
func NewModule(code, name string) (*Module, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Module code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Module name cannot be empty")
	}

	return &Module{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Active:            true,
	}, nil
}

// TenantModule is the association between a tenant and an enabled module.
// Detaching a module removes this row; it is the only hard delete in the
// documented paths.
type TenantModule struct {
	TenantID  uuid.UUID `gorm:"type:uuid;not null;primaryKey"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (TenantModule) TableName() string {
	return "tenant_modules"
}
