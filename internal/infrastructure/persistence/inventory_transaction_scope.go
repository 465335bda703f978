package persistence

import (
	"context"

	"github.com/pedezap/backend/internal/application/inventory"
	"github.com/pedezap/backend/internal/domain/catalog"
	domaininventory "github.com/pedezap/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope runs stock movements inside a single
// database transaction.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn inside a transaction; repositories handed to fn are
// bound to that transaction.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos inventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormInventoryRepositories) IngredientRepo() domaininventory.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

func (r *gormInventoryRepositories) MovementRepo() domaininventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ inventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ inventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
