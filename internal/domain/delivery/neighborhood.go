package delivery

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Neighborhood ("bairro") is the smallest unit of the delivery-fee
// hierarchy. It may carry a personalized fee override and may belong to a
// NeighborhoodGroup.
type Neighborhood struct {
	shared.TenantAggregateRoot
	CityID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_hood_city_name,priority:1"`
	GroupID       *uuid.UUID       `gorm:"type:uuid;index"`
	Name          string           `gorm:"type:varchar(100);not null;uniqueIndex:idx_hood_city_name,priority:2"`
	Fee           *decimal.Decimal `gorm:"type:decimal(18,2)"` // Personalized fee; nil means inherit
	EstimatedTime *string          `gorm:"type:varchar(20)"`   // Personalized estimate; nil means inherit
	Active        bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Neighborhood) TableName() string {
	return "neighborhoods"
}

// NewNeighborhood creates a new neighborhood within a city
func NewNeighborhood(tenantID, cityID uuid.UUID, name string) (*Neighborhood, error) {
	if cityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CITY", "City ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Neighborhood name cannot be empty")
	}

	return &Neighborhood{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CityID:              cityID,
		Name:                name,
		Active:              true,
	}, nil
}

// HasPersonalizedFee returns true when the neighborhood overrides the fee
func (n *Neighborhood) HasPersonalizedFee() bool {
	return n.Fee != nil
}

// SetPersonalizedFee sets a fee override for this neighborhood
func (n *Neighborhood) SetPersonalizedFee(fee decimal.Decimal, estimatedTime string) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Delivery fee cannot be negative")
	}

	n.Fee = &fee
	if estimatedTime != "" {
		n.EstimatedTime = &estimatedTime
	}
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	return nil
}

// ClearPersonalizedFee removes the fee override, falling back to the group
// or city tier
func (n *Neighborhood) ClearPersonalizedFee() {
	n.Fee = nil
	n.EstimatedTime = nil
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}

// AssignGroup places the neighborhood in a fee group
func (n *Neighborhood) AssignGroup(groupID uuid.UUID) error {
	if groupID == uuid.Nil {
		return shared.NewDomainError("INVALID_GROUP", "Group ID cannot be empty")
	}

	n.GroupID = &groupID
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	return nil
}

// RemoveFromGroup detaches the neighborhood from its fee group
func (n *Neighborhood) RemoveFromGroup() {
	n.GroupID = nil
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}

// Rename changes the neighborhood name
func (n *Neighborhood) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Neighborhood name cannot be empty")
	}

	n.Name = name
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	return nil
}

// Toggle flips the active flag
func (n *Neighborhood) Toggle() {
	n.Active = !n.Active
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}
