package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest registers a stock movement against a product
type RecordMovementRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Direction string          `json:"direction" binding:"required,oneof=in out adjustment"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Note      string          `json:"note" binding:"max=255"`
	SourceRef string          `json:"source_ref" binding:"max=100"`
}

// RecordIngredientMovementRequest registers a movement directly against
// an ingredient
type RecordIngredientMovementRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Direction    string          `json:"direction" binding:"required,oneof=in out adjustment"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Note         string          `json:"note" binding:"max=255"`
	SourceRef    string          `json:"source_ref" binding:"max=100"`
}

// MovementResponse represents a movement in API responses
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	Target        string          `json:"target"`
	ProductID     *uuid.UUID      `json:"product_id,omitempty"`
	IngredientID  *uuid.UUID      `json:"ingredient_id,omitempty"`
	Direction     string          `json:"direction"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Note          string          `json:"note,omitempty"`
	SourceType    string          `json:"source_type"`
	SourceRef     string          `json:"source_ref,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// ToMovementResponse converts a domain movement to its API shape
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		Target:        string(m.Target),
		ProductID:     m.ProductID,
		IngredientID:  m.IngredientID,
		Direction:     string(m.Direction),
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Note:          m.Note,
		SourceType:    string(m.SourceType),
		SourceRef:     m.SourceRef,
		OccurredAt:    m.OccurredAt,
	}
}

// RecordMovementResponse carries all movements produced by one request.
// A product movement with an auto-deduct ingredient link produces two.
type RecordMovementResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// MovementListFilter represents filter options for movement history
type MovementListFilter struct {
	Direction    string     `form:"direction" binding:"omitempty,oneof=in out adjustment"`
	SourceType   string     `form:"source_type" binding:"omitempty,oneof=manual order purchase cascade"`
	ProductID    *uuid.UUID `form:"product_id"`
	IngredientID *uuid.UUID `form:"ingredient_id"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// IngredientRequest creates or updates an ingredient
type IngredientRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	UnitID       *uuid.UUID      `json:"unit_id"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// IngredientResponse represents an ingredient in API responses
type IngredientResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	UnitID       *uuid.UUID      `json:"unit_id,omitempty"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	BelowMinimum bool            `json:"below_minimum"`
	Active       bool            `json:"active"`
}

// ToIngredientResponse converts a domain ingredient to its API shape
func ToIngredientResponse(i *inventory.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           i.ID,
		Name:         i.Name,
		UnitID:       i.UnitID,
		CurrentStock: i.CurrentStock,
		MinimumStock: i.MinimumStock,
		BelowMinimum: i.IsBelowMinimum(),
		Active:       i.Active,
	}
}
