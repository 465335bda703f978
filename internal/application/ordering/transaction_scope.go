package ordering

import (
	"context"

	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/inventory"
	"github.com/pedezap/backend/internal/domain/ordering"
	"github.com/pedezap/backend/internal/domain/promotion"
)

// TransactionScope provides transactional access to everything an order
// confirmation touches: the order itself, the coupon being redeemed and
// the stock counters of the ordered products.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the transaction
	OrderRepo() ordering.OrderRepository
	// CouponRepo returns the coupon repository scoped to the transaction
	CouponRepo() promotion.CouponRepository
	// ProductRepo returns the product repository scoped to the transaction
	ProductRepo() catalog.ProductRepository
	// IngredientRepo returns the ingredient repository scoped to the transaction
	IngredientRepo() inventory.IngredientRepository
	// MovementRepo returns the movement repository scoped to the transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	orderRepo      ordering.OrderRepository
	couponRepo     promotion.CouponRepository
	productRepo    catalog.ProductRepository
	ingredientRepo inventory.IngredientRepository
	movementRepo   inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orderRepo ordering.OrderRepository,
	couponRepo promotion.CouponRepository,
	productRepo catalog.ProductRepository,
	ingredientRepo inventory.IngredientRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:      orderRepo,
		couponRepo:     couponRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() ordering.OrderRepository { return s.orderRepo }

// CouponRepo returns the coupon repository
func (s *NoOpTransactionScope) CouponRepo() promotion.CouponRepository { return s.couponRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// IngredientRepo returns the ingredient repository
func (s *NoOpTransactionScope) IngredientRepo() inventory.IngredientRepository {
	return s.ingredientRepo
}

// MovementRepo returns the movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
