package delivery

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// City is a serviced city with its own default delivery fee and estimate.
// Neighborhoods belong to a city.
type City struct {
	shared.TenantAggregateRoot
	Name          string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_city_tenant_name,priority:2"`
	State         string          `gorm:"type:varchar(2);not null"` // UF code, e.g. "SP"
	Fee           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	EstimatedTime string          `gorm:"type:varchar(20);not null;default:'30-45'"` // Minutes range
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (City) TableName() string {
	return "cities"
}

// NewCity creates a new serviced city
func NewCity(tenantID uuid.UUID, name, state string, fee decimal.Decimal, estimatedTime string) (*City, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "City name cannot be empty")
	}
	state = strings.ToUpper(strings.TrimSpace(state))
	if len(state) != 2 {
		return nil, shared.NewDomainError("INVALID_STATE", "State must be a two-letter UF code")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}
	if estimatedTime == "" {
		estimatedTime = "30-45"
	}

	return &City{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		State:               state,
		Fee:                 fee,
		EstimatedTime:       estimatedTime,
		Active:              true,
	}, nil
}

// Update updates the city's fee settings
func (c *City) Update(name string, fee decimal.Decimal, estimatedTime string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "City name cannot be empty")
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}

	c.Name = name
	c.Fee = fee
	if estimatedTime != "" {
		c.EstimatedTime = estimatedTime
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Toggle flips the active flag
func (c *City) Toggle() {
	c.Active = !c.Active
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
