package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ingredient is a raw input ("insumo") tracked independently of the
// products that consume it.
type Ingredient struct {
	shared.TenantAggregateRoot
	Name         string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_ingredient_tenant_name"`
	UnitID       *uuid.UUID      `gorm:"type:uuid"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinimumStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient creates an ingredient with zero stock
func NewIngredient(tenantID uuid.UUID, name string, unitID *uuid.UUID) (*Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}

	return &Ingredient{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		UnitID:              unitID,
		CurrentStock:        decimal.Zero,
		MinimumStock:        decimal.Zero,
		Active:              true,
	}, nil
}

// Update changes the ingredient attributes
func (i *Ingredient) Update(name string, unitID *uuid.UUID, minimumStock decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if minimumStock.IsNegative() {
		return shared.NewDomainError("INVALID_MINIMUM_STOCK", "Minimum stock cannot be negative")
	}

	i.Name = name
	i.UnitID = unitID
	i.MinimumStock = minimumStock
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IncreaseStock adds quantity to the stock counter
func (i *Ingredient) IncreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.CurrentStock = i.CurrentStock.Add(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// DecreaseStock removes quantity from the stock counter. The counter
// never goes negative.
func (i *Ingredient) DecreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.CurrentStock.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	i.CurrentStock = i.CurrentStock.Sub(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// AdjustStock sets the counter to an absolute value
func (i *Ingredient) AdjustStock(newStock decimal.Decimal) error {
	if newStock.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be negative")
	}

	i.CurrentStock = newStock
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsBelowMinimum reports whether the stock dropped under the threshold
func (i *Ingredient) IsBelowMinimum() bool {
	return i.MinimumStock.GreaterThan(decimal.Zero) && i.CurrentStock.LessThan(i.MinimumStock)
}

// Toggle flips the active flag
func (i *Ingredient) Toggle() {
	i.Active = !i.Active
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
