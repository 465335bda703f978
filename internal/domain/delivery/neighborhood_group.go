package delivery

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// NeighborhoodGroup overrides the delivery fee and estimate for a set of
// neighborhoods, sitting between the neighborhood and city tiers.
type NeighborhoodGroup struct {
	shared.TenantAggregateRoot
	Name          string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_hood_group_tenant_name,priority:2"`
	Fee           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	EstimatedTime string          `gorm:"type:varchar(20);not null;default:'30-45'"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (NeighborhoodGroup) TableName() string {
	return "neighborhood_groups"
}

// NewNeighborhoodGroup creates a new neighborhood group
func NewNeighborhoodGroup(tenantID uuid.UUID, name string, fee decimal.Decimal, estimatedTime string) (*NeighborhoodGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Group name cannot be empty")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}
	if estimatedTime == "" {
		estimatedTime = "30-45"
	}

	return &NeighborhoodGroup{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Fee:                 fee,
		EstimatedTime:       estimatedTime,
		Active:              true,
	}, nil
}

// Update updates the group's fee settings
func (g *NeighborhoodGroup) Update(name string, fee decimal.Decimal, estimatedTime string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Group name cannot be empty")
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}

	g.Name = name
	g.Fee = fee
	if estimatedTime != "" {
		g.EstimatedTime = estimatedTime
	}
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// Toggle flips the active flag
func (g *NeighborhoodGroup) Toggle() {
	g.Active = !g.Active
	g.UpdatedAt = time.Now()
	g.IncrementVersion()
}
