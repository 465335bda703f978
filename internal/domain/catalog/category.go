package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// Category groups products on the storefront menu
type Category struct {
	shared.TenantAggregateRoot
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_tenant_name,priority:2"`
	SortOrder int    `gorm:"not null;default:0"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name string, sortOrder int) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		SortOrder:           sortOrder,
		Active:              true,
	}, nil
}

// Update updates the category
func (c *Category) Update(name string, sortOrder int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	c.Name = name
	c.SortOrder = sortOrder
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Toggle flips the active flag
func (c *Category) Toggle() {
	c.Active = !c.Active
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// CategoryRepository defines the persistence interface for categories
type CategoryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
}
