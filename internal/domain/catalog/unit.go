package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// UnitOfMeasure represents a measurement unit for products and ingredients
// (e.g. "Unidade"/"un", "Quilograma"/"kg").
type UnitOfMeasure struct {
	shared.TenantAggregateRoot
	Name         string `gorm:"type:varchar(50);not null"`
	Abbreviation string `gorm:"type:varchar(10);not null;uniqueIndex:idx_unit_tenant_abbr,priority:2"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UnitOfMeasure) TableName() string {
	return "units_of_measure"
}

// NewUnitOfMeasure creates a new unit of measure
func NewUnitOfMeasure(tenantID uuid.UUID, name, abbreviation string) (*UnitOfMeasure, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Unit name cannot be empty")
	}
	abbreviation = strings.ToLower(strings.TrimSpace(abbreviation))
	if abbreviation == "" {
		return nil, shared.NewDomainError("INVALID_ABBREVIATION", "Unit abbreviation cannot be empty")
	}
	if len(abbreviation) > 10 {
		return nil, shared.NewDomainError("INVALID_ABBREVIATION", "Unit abbreviation cannot exceed 10 characters")
	}

	return &UnitOfMeasure{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Abbreviation:        abbreviation,
		Active:              true,
	}, nil
}

// Update updates the unit's name and abbreviation
func (u *UnitOfMeasure) Update(name, abbreviation string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Unit name cannot be empty")
	}
	abbreviation = strings.ToLower(strings.TrimSpace(abbreviation))
	if abbreviation == "" || len(abbreviation) > 10 {
		return shared.NewDomainError("INVALID_ABBREVIATION", "Unit abbreviation must be 1-10 characters")
	}

	u.Name = name
	u.Abbreviation = abbreviation
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Toggle flips the active flag
func (u *UnitOfMeasure) Toggle() {
	u.Active = !u.Active
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// UnitOfMeasureRepository defines the persistence interface for units
type UnitOfMeasureRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*UnitOfMeasure, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UnitOfMeasure, error)
	Save(ctx context.Context, unit *UnitOfMeasure) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByAbbreviation(ctx context.Context, tenantID uuid.UUID, abbreviation string) (bool, error)
}
