package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	UnitID      *uuid.UUID      `json:"unit_id"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	SortOrder   *int            `json:"sort_order"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	UnitID      *uuid.UUID       `json:"unit_id"`
	Price       *decimal.Decimal `json:"price"`
	SortOrder   *int             `json:"sort_order"`
}

// LinkIngredientRequest binds a product to an ingredient for auto-deduction
type LinkIngredientRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Ratio        decimal.Decimal `json:"ratio" binding:"required"`
	AutoDeduct   bool            `json:"auto_deduct"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	UnitID       *uuid.UUID      `json:"unit_id"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url,omitempty"`
	Status       string          `json:"status"`
	SortOrder    int             `json:"sort_order"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	IngredientID *uuid.UUID      `json:"ingredient_id,omitempty"`
	Ratio        decimal.Decimal `json:"ingredient_ratio"`
	AutoDeduct   bool            `json:"auto_deduct"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product, imageURL string) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		UnitID:       p.UnitID,
		Price:        p.Price,
		ImageURL:     imageURL,
		Status:       string(p.Status),
		SortOrder:    p.SortOrder,
		CurrentStock: p.CurrentStock,
		IngredientID: p.Ingredient.IngredientID,
		Ratio:        p.Ingredient.Ratio,
		AutoDeduct:   p.Ingredient.AutoDeduct,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.GetVersion(),
	}
}

// CreateComplementGroupRequest creates an options group for a product
type CreateComplementGroupRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	Name         string    `json:"name" binding:"required,min=1,max=100"`
	MinSelection int       `json:"min_selection" binding:"min=0"`
	MaxSelection int       `json:"max_selection" binding:"min=1"`
	Required     bool      `json:"required"`
}

// UpdateComplementGroupRequest updates a group's selection rules
type UpdateComplementGroupRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	MinSelection int    `json:"min_selection" binding:"min=0"`
	MaxSelection int    `json:"max_selection" binding:"min=1"`
	Required     bool   `json:"required"`
}

// ComplementItemRequest creates or updates an item inside a group
type ComplementItemRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=100"`
	Price decimal.Decimal `json:"price"`
}

// ComplementItemResponse represents a complement item in API responses
type ComplementItemResponse struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
}

// ComplementGroupResponse represents a complement group in API responses
type ComplementGroupResponse struct {
	ID           uuid.UUID                `json:"id"`
	ProductID    uuid.UUID                `json:"product_id"`
	Name         string                   `json:"name"`
	MinSelection int                      `json:"min_selection"`
	MaxSelection int                      `json:"max_selection"`
	Required     bool                     `json:"required"`
	Active       bool                     `json:"active"`
	Items        []ComplementItemResponse `json:"items"`
}

// ToComplementGroupResponse converts a domain group to its API shape
func ToComplementGroupResponse(g *catalog.ComplementGroup) ComplementGroupResponse {
	items := make([]ComplementItemResponse, 0, len(g.Items))
	for _, item := range g.Items {
		items = append(items, ComplementItemResponse{
			ID:     item.ID,
			Name:   item.Name,
			Price:  item.Price,
			Active: item.Active,
		})
	}
	return ComplementGroupResponse{
		ID:           g.ID,
		ProductID:    g.ProductID,
		Name:         g.Name,
		MinSelection: g.MinSelection,
		MaxSelection: g.MaxSelection,
		Required:     g.Required,
		Active:       g.Active,
		Items:        items,
	}
}

// UnitRequest creates or updates a unit of measure
type UnitRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=50"`
	Abbreviation string `json:"abbreviation" binding:"required,min=1,max=10"`
}

// UnitResponse represents a unit of measure in API responses
type UnitResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	Active       bool      `json:"active"`
}

// ToUnitResponse converts a domain unit to its API shape
func ToUnitResponse(u *catalog.UnitOfMeasure) UnitResponse {
	return UnitResponse{
		ID:           u.ID,
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
		Active:       u.Active,
	}
}

// CategoryRequest creates or updates a category
type CategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
}

// ToCategoryResponse converts a domain category to its API shape
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		Active:    c.Active,
	}
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	CategoryID *uuid.UUID `form:"category_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
