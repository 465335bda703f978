package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementDirection enumerates stock movement kinds
type MovementDirection string

const (
	MovementIn         MovementDirection = "in"
	MovementOut        MovementDirection = "out"
	MovementAdjustment MovementDirection = "adjustment"
)

// MovementTarget identifies what kind of counter a movement touched
type MovementTarget string

const (
	TargetProduct    MovementTarget = "product"
	TargetIngredient MovementTarget = "ingredient"
)

// SourceDocumentType identifies the document that originated a movement
type SourceDocumentType string

const (
	SourceManual   SourceDocumentType = "manual"
	SourceOrder    SourceDocumentType = "order"
	SourcePurchase SourceDocumentType = "purchase"
	SourceCascade  SourceDocumentType = "cascade"
)

// StockMovement is an immutable audit record of one counter change.
// Rows are append-only; corrections are new adjustment movements.
type StockMovement struct {
	shared.BaseEntity
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;index:idx_movement_tenant_time"`
	Target        MovementTarget     `gorm:"type:varchar(20);not null"`
	ProductID     *uuid.UUID         `gorm:"type:uuid;index"`
	IngredientID  *uuid.UUID         `gorm:"type:uuid;index"`
	Direction     MovementDirection  `gorm:"type:varchar(20);not null;index"`
	Quantity      decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	BalanceBefore decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Note          string             `gorm:"type:varchar(255)"`
	SourceType    SourceDocumentType `gorm:"type:varchar(20);not null;default:'manual';index"`
	SourceRef     string             `gorm:"type:varchar(100)"`
	OccurredAt    time.Time          `gorm:"not null;index:idx_movement_tenant_time"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

func validDirection(direction MovementDirection) bool {
	switch direction {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

func newMovement(tenantID uuid.UUID, direction MovementDirection, quantity, before, after decimal.Decimal, note string, sourceType SourceDocumentType, sourceRef string) (*StockMovement, error) {
	if !validDirection(direction) {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Direction must be in, out or adjustment")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if sourceType == "" {
		sourceType = SourceManual
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		Direction:     direction,
		Quantity:      quantity,
		BalanceBefore: before,
		BalanceAfter:  after,
		Note:          strings.TrimSpace(note),
		SourceType:    sourceType,
		SourceRef:     sourceRef,
		OccurredAt:    time.Now(),
	}, nil
}

// NewProductMovement records a change to a product stock counter
func NewProductMovement(tenantID, productID uuid.UUID, direction MovementDirection, quantity, before, after decimal.Decimal, note string, sourceType SourceDocumentType, sourceRef string) (*StockMovement, error) {
	movement, err := newMovement(tenantID, direction, quantity, before, after, note, sourceType, sourceRef)
	if err != nil {
		return nil, err
	}

	movement.Target = TargetProduct
	movement.ProductID = &productID

	return movement, nil
}

// NewIngredientMovement records a change to an ingredient stock counter
func NewIngredientMovement(tenantID, ingredientID uuid.UUID, direction MovementDirection, quantity, before, after decimal.Decimal, note string, sourceType SourceDocumentType, sourceRef string) (*StockMovement, error) {
	movement, err := newMovement(tenantID, direction, quantity, before, after, note, sourceType, sourceRef)
	if err != nil {
		return nil, err
	}

	movement.Target = TargetIngredient
	movement.IngredientID = &ingredientID

	return movement, nil
}
