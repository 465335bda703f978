package persistence

import (
	"context"

	appordering "github.com/pedezap/backend/internal/application/ordering"
	"github.com/pedezap/backend/internal/domain/catalog"
	domaininventory "github.com/pedezap/backend/internal/domain/inventory"
	"github.com/pedezap/backend/internal/domain/ordering"
	"github.com/pedezap/backend/internal/domain/promotion"
	"gorm.io/gorm"
)

// GormOrderingTransactionScope runs order confirmation inside a single
// database transaction, so the status change, coupon redemption and
// stock deductions commit or roll back together.
type GormOrderingTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderingTransactionScope creates a new GormOrderingTransactionScope
func NewGormOrderingTransactionScope(db *gorm.DB) *GormOrderingTransactionScope {
	return &GormOrderingTransactionScope{db: db}
}

// Execute runs fn inside a transaction; repositories handed to fn are
// bound to that transaction.
func (s *GormOrderingTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderingRepositories{tx: tx})
	})
}

type gormOrderingRepositories struct {
	tx *gorm.DB
}

func (r *gormOrderingRepositories) OrderRepo() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormOrderingRepositories) CouponRepo() promotion.CouponRepository {
	return NewGormCouponRepository(r.tx)
}

func (r *gormOrderingRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormOrderingRepositories) IngredientRepo() domaininventory.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

func (r *gormOrderingRepositories) MovementRepo() domaininventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appordering.TransactionScope = (*GormOrderingTransactionScope)(nil)
var _ appordering.TransactionalRepositories = (*gormOrderingRepositories)(nil)
