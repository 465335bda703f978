package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ComplementGroup is a set of optional additions for a product
// (e.g. "Extras", "Sauces"). It is an aggregate root; its items are
// child entities persisted through the group.
type ComplementGroup struct {
	shared.TenantAggregateRoot
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name         string           `gorm:"type:varchar(100);not null"`
	MinSelection int              `gorm:"not null;default:0"`
	MaxSelection int              `gorm:"not null;default:1"`
	Required     bool             `gorm:"not null;default:false"`
	Active       bool             `gorm:"not null;default:true"`
	Items        []ComplementItem `gorm:"foreignKey:GroupID;references:ID"`
}

// TableName returns the table name for GORM
func (ComplementGroup) TableName() string {
	return "complement_groups"
}

// ComplementItem is a selectable option within a complement group
type ComplementItem struct {
	shared.BaseEntity
	GroupID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name    string          `gorm:"type:varchar(100);not null"`
	Price   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Active  bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ComplementItem) TableName() string {
	return "complement_items"
}

// NewComplementGroup creates a new complement group for a product
func NewComplementGroup(tenantID, productID uuid.UUID, name string, minSelection, maxSelection int, required bool) (*ComplementGroup, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Complement group name cannot be empty")
	}
	if minSelection < 0 {
		return nil, shared.NewDomainError("INVALID_SELECTION", "Minimum selection cannot be negative")
	}
	if maxSelection < 1 || maxSelection < minSelection {
		return nil, shared.NewDomainError("INVALID_SELECTION", "Maximum selection must be at least 1 and not below the minimum")
	}

	return &ComplementGroup{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		Name:                name,
		MinSelection:        minSelection,
		MaxSelection:        maxSelection,
		Required:            required,
		Active:              true,
		Items:               make([]ComplementItem, 0),
	}, nil
}

// AddItem adds a new item to the group
func (g *ComplementGroup) AddItem(name string, price decimal.Decimal) (*ComplementItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Complement item name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Complement item price cannot be negative")
	}
	for _, item := range g.Items {
		if strings.EqualFold(item.Name, name) && item.Active {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Complement item with this name already exists")
		}
	}

	item := ComplementItem{
		BaseEntity: shared.NewBaseEntity(),
		GroupID:    g.ID,
		Name:       name,
		Price:      price,
		Active:     true,
	}
	g.Items = append(g.Items, item)
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return &g.Items[len(g.Items)-1], nil
}

// UpdateItem updates an item's name and price
func (g *ComplementGroup) UpdateItem(itemID uuid.UUID, name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Complement item name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Complement item price cannot be negative")
	}

	for i := range g.Items {
		if g.Items[i].ID == itemID {
			g.Items[i].Name = name
			g.Items[i].Price = price
			g.Items[i].UpdatedAt = time.Now()
			g.UpdatedAt = time.Now()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// ToggleItem flips the active flag of an item
func (g *ComplementGroup) ToggleItem(itemID uuid.UUID) error {
	for i := range g.Items {
		if g.Items[i].ID == itemID {
			g.Items[i].Active = !g.Items[i].Active
			g.Items[i].UpdatedAt = time.Now()
			g.UpdatedAt = time.Now()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Update updates the group's settings
func (g *ComplementGroup) Update(name string, minSelection, maxSelection int, required bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Complement group name cannot be empty")
	}
	if minSelection < 0 {
		return shared.NewDomainError("INVALID_SELECTION", "Minimum selection cannot be negative")
	}
	if maxSelection < 1 || maxSelection < minSelection {
		return shared.NewDomainError("INVALID_SELECTION", "Maximum selection must be at least 1 and not below the minimum")
	}

	g.Name = name
	g.MinSelection = minSelection
	g.MaxSelection = maxSelection
	g.Required = required
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// Toggle flips the active flag of the whole group
func (g *ComplementGroup) Toggle() {
	g.Active = !g.Active
	g.UpdatedAt = time.Now()
	g.IncrementVersion()
}

// ActiveItems returns only the items visible on the storefront
func (g *ComplementGroup) ActiveItems() []ComplementItem {
	items := make([]ComplementItem, 0, len(g.Items))
	for _, item := range g.Items {
		if item.Active {
			items = append(items, item)
		}
	}
	return items
}
