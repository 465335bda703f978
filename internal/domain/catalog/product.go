package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IngredientLink is the optional 1:1 relation between a product and an
// ingredient. When AutoDeduct is set, every outbound product movement also
// deducts Ratio * quantity from the linked ingredient.
type IngredientLink struct {
	IngredientID *uuid.UUID      `gorm:"type:uuid;index"`
	Ratio        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	AutoDeduct   bool            `gorm:"not null;default:false"`
}

// IsSet returns true if an ingredient is linked
func (l IngredientLink) IsSet() bool {
	return l.IngredientID != nil
}

// Product represents a sellable menu item.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.TenantAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	UnitID       *uuid.UUID      `gorm:"type:uuid;index"` // Unit of measure
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ImagePath    string          `gorm:"type:varchar(500)"` // Object storage key
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder    int             `gorm:"not null;default:0"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Ingredient   IngredientLink  `gorm:"embedded;embeddedPrefix:ingredient_"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, code, name string, price decimal.Decimal) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Price:               price,
		Status:              ProductStatusActive,
		CurrentStock:        decimal.Zero,
		Ingredient:          IngredientLink{Ratio: decimal.NewFromInt(1)},
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice sets the product's selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetUnit sets the product unit of measure
func (p *Product) SetUnit(unitID *uuid.UUID) {
	p.UnitID = unitID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetImagePath stores the object storage key of the product image
func (p *Product) SetImagePath(path string) {
	p.ImagePath = path
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSortOrder sets the storefront sort order
func (p *Product) SetSortOrder(order int) {
	p.SortOrder = order
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// LinkIngredient links the product to an ingredient for automatic stock
// deduction. Ratio is the ingredient quantity consumed per product unit.
func (p *Product) LinkIngredient(ingredientID uuid.UUID, ratio decimal.Decimal, autoDeduct bool) error {
	if ingredientID == uuid.Nil {
		return shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if ratio.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RATIO", "Consumption ratio must be positive")
	}

	p.Ingredient = IngredientLink{
		IngredientID: &ingredientID,
		Ratio:        ratio,
		AutoDeduct:   autoDeduct,
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UnlinkIngredient removes the ingredient link
func (p *Product) UnlinkIngredient() {
	p.Ingredient = IngredientLink{Ratio: decimal.NewFromInt(1)}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IncreaseStock adds quantity to the product's stock counter
func (p *Product) IncreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.CurrentStock = p.CurrentStock.Add(quantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DecreaseStock removes quantity from the product's stock counter.
// The counter is never allowed to go negative.
func (p *Product) DecreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.CurrentStock.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	p.CurrentStock = p.CurrentStock.Sub(quantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AdjustStock replaces the stock counter with an absolute value (stock taking)
func (p *Product) AdjustStock(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock cannot be adjusted to a negative value")
	}

	p.CurrentStock = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate makes the product visible on the storefront
func (p *Product) Activate() {
	if p.Status == ProductStatusActive {
		return
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p))
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	if p.Status == ProductStatusInactive {
		return
	}
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p))
}

// IsActive returns true if the product is visible on the storefront
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateProductCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
