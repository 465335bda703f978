package inventory

import (
	"context"

	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// stock movement touches. Everything executed inside Execute commits or
// rolls back as one database transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped
// to the current transaction.
type TransactionalRepositories interface {
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
	productRepo    catalog.ProductRepository
	ingredientRepo inventory.IngredientRepository
	movementRepo   inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	ingredientRepo inventory.IngredientRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

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
