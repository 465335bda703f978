package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, tenantID, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

// MockUnitRepository is a mock implementation of UnitOfMeasureRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.UnitOfMeasure, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.UnitOfMeasure, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.UnitOfMeasure), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.UnitOfMeasure) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUnitRepository) ExistsByAbbreviation(ctx context.Context, tenantID uuid.UUID, abbreviation string) (bool, error) {
	args := m.Called(ctx, tenantID, abbreviation)
	return args.Bool(0), args.Error(1)
}

func newProductServiceFixture() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockUnitRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	unitRepo := new(MockUnitRepository)
	return NewProductService(productRepo, categoryRepo, unitRepo, nil), productRepo, categoryRepo, unitRepo
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates product with normalized code", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		productRepo.On("ExistsByCode", ctx, tenantID, "PIZZA-01").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateProductRequest{
			Code:  "pizza-01",
			Name:  "Pizza Margherita",
			Price: decimal.NewFromFloat(45.90),
		})
		require.NoError(t, err)
		assert.Equal(t, "PIZZA-01", resp.Code)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		productRepo.On("ExistsByCode", ctx, tenantID, "PIZZA-01").Return(true, nil)

		_, err := service.Create(ctx, tenantID, CreateProductRequest{
			Code:  "PIZZA-01",
			Name:  "Pizza Margherita",
			Price: decimal.NewFromFloat(45.90),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		service, productRepo, categoryRepo, _ := newProductServiceFixture()
		categoryID := uuid.New()

		productRepo.On("ExistsByCode", ctx, tenantID, "PIZZA-01").Return(false, nil)
		categoryRepo.On("FindByIDForTenant", ctx, tenantID, categoryID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, tenantID, CreateProductRequest{
			Code:       "PIZZA-01",
			Name:       "Pizza Margherita",
			Price:      decimal.NewFromFloat(45.90),
			CategoryID: &categoryID,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})
}

func TestProductService_LinkIngredient(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	ingredientID := uuid.New()

	newProduct := func(t *testing.T) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct(tenantID, "PIZZA-01", "Pizza Margherita", decimal.NewFromFloat(45.90))
		require.NoError(t, err)
		return product
	}

	t.Run("links with ratio and auto deduct", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()
		product := newProduct(t)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		resp, err := service.LinkIngredient(ctx, tenantID, product.ID, LinkIngredientRequest{
			IngredientID: ingredientID,
			Ratio:        decimal.NewFromFloat(0.3),
			AutoDeduct:   true,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.IngredientID)
		assert.Equal(t, ingredientID, *resp.IngredientID)
		assert.True(t, resp.AutoDeduct)
	})

	t.Run("rejects non-positive ratio", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()
		product := newProduct(t)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

		_, err := service.LinkIngredient(ctx, tenantID, product.ID, LinkIngredientRequest{
			IngredientID: ingredientID,
			Ratio:        decimal.Zero,
		})
		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("concurrency conflict propagates", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()
		product := newProduct(t)

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(shared.ErrConcurrencyConflict)

		_, err := service.LinkIngredient(ctx, tenantID, product.ID, LinkIngredientRequest{
			IngredientID: ingredientID,
			Ratio:        decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestProductService_Toggle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	service, productRepo, _, _ := newProductServiceFixture()
	product, err := catalog.NewProduct(tenantID, "PIZZA-01", "Pizza Margherita", decimal.NewFromFloat(45.90))
	require.NoError(t, err)

	productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product).Return(nil)

	resp, err := service.Toggle(ctx, tenantID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)
}
