package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/delivery"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/inventory"
	"github.com/pedezap/backend/internal/domain/ordering"
	"github.com/pedezap/backend/internal/domain/promotion"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number int64) (*ordering.Order, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter ordering.OrderFilter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCouponRepository is a mock implementation of promotion.CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*promotion.Coupon, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*promotion.Coupon, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*promotion.Coupon, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*promotion.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Save(ctx context.Context, coupon *promotion.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCouponRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
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

// MockIngredientRepository is a mock implementation of inventory.IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Ingredient, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*inventory.Ingredient, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]*inventory.Ingredient, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Save(ctx context.Context, ingredient *inventory.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) SaveWithLock(ctx context.Context, ingredient *inventory.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockIngredientRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockIngredientRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter inventory.MovementFilter) ([]*inventory.StockMovement, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*inventory.StockMovement), args.Get(1).(int64), args.Error(2)
}

// MockComplementGroupRepository is a mock implementation of catalog.ComplementGroupRepository
type MockComplementGroupRepository struct {
	mock.Mock
}

func (m *MockComplementGroupRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ComplementGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ComplementGroup), args.Error(1)
}

func (m *MockComplementGroupRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]catalog.ComplementGroup, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).([]catalog.ComplementGroup), args.Error(1)
}

func (m *MockComplementGroupRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.ComplementGroup, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.ComplementGroup), args.Error(1)
}

func (m *MockComplementGroupRepository) Save(ctx context.Context, group *catalog.ComplementGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockComplementGroupRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockCityRepository is a mock implementation of delivery.CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*delivery.City, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.City), args.Error(1)
}

func (m *MockCityRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*delivery.City, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.City), args.Error(1)
}

func (m *MockCityRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*delivery.City, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*delivery.City), args.Error(1)
}

func (m *MockCityRepository) Save(ctx context.Context, city *delivery.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCityRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, tenantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCityRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNeighborhoodRepository is a mock implementation of delivery.NeighborhoodRepository
type MockNeighborhoodRepository struct {
	mock.Mock
}

func (m *MockNeighborhoodRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*delivery.Neighborhood, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Neighborhood), args.Error(1)
}

func (m *MockNeighborhoodRepository) FindByNameInCity(ctx context.Context, tenantID, cityID uuid.UUID, name string) (*delivery.Neighborhood, error) {
	args := m.Called(ctx, tenantID, cityID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Neighborhood), args.Error(1)
}

func (m *MockNeighborhoodRepository) FindByCity(ctx context.Context, tenantID, cityID uuid.UUID, filter shared.Filter) ([]*delivery.Neighborhood, error) {
	args := m.Called(ctx, tenantID, cityID, filter)
	return args.Get(0).([]*delivery.Neighborhood), args.Error(1)
}

func (m *MockNeighborhoodRepository) FindByGroup(ctx context.Context, tenantID, groupID uuid.UUID) ([]*delivery.Neighborhood, error) {
	args := m.Called(ctx, tenantID, groupID)
	return args.Get(0).([]*delivery.Neighborhood), args.Error(1)
}

func (m *MockNeighborhoodRepository) Save(ctx context.Context, neighborhood *delivery.Neighborhood) error {
	args := m.Called(ctx, neighborhood)
	return args.Error(0)
}

func (m *MockNeighborhoodRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockNeighborhoodRepository) CountByCity(ctx context.Context, tenantID, cityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, cityID)
	return args.Get(0).(int64), args.Error(1)
}

// MockGroupRepository is a mock implementation of delivery.NeighborhoodGroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*delivery.NeighborhoodGroup, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.NeighborhoodGroup), args.Error(1)
}

func (m *MockGroupRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*delivery.NeighborhoodGroup, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*delivery.NeighborhoodGroup), args.Error(1)
}

func (m *MockGroupRepository) Save(ctx context.Context, group *delivery.NeighborhoodGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type checkoutFixture struct {
	tenant      *identity.Tenant
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	groupRepo   *MockComplementGroupRepository
	couponRepo  *MockCouponRepository
	cityRepo    *MockCityRepository
	hoodRepo    *MockNeighborhoodRepository
	feeGroups   *MockGroupRepository
	service     *CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	tenant, err := identity.NewTenant("pizzaria-bella", "Pizzaria Bella")
	require.NoError(t, err)
	tenant.DefaultFee = decimal.NewFromInt(10)
	tenant.DefaultTime = "40-60"

	f := &checkoutFixture{
		tenant:      tenant,
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		groupRepo:   new(MockComplementGroupRepository),
		couponRepo:  new(MockCouponRepository),
		cityRepo:    new(MockCityRepository),
		hoodRepo:    new(MockNeighborhoodRepository),
		feeGroups:   new(MockGroupRepository),
	}
	resolver := delivery.NewFeeResolver(f.cityRepo, f.hoodRepo, f.feeGroups)
	f.service = NewCheckoutService(f.orderRepo, f.productRepo, f.groupRepo, f.couponRepo, resolver)
	return f
}

func activeProduct(t *testing.T, tenantID uuid.UUID, code string, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, code, "Product "+code, decimal.NewFromInt(price))
	require.NoError(t, err)
	return product
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending order with fee from tenant default", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := activeProduct(t, f.tenant.ID, "PIZZA-M", 50)

		f.productRepo.On("FindByIDForTenant", ctx, f.tenant.ID, product.ID).Return(product, nil)
		f.cityRepo.On("FindByName", ctx, f.tenant.ID, "Niteroi").Return(nil, shared.ErrNotFound)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

		resp, err := f.service.Checkout(ctx, f.tenant, CheckoutRequest{
			CustomerName:  "Maria Souza",
			CustomerPhone: "21999990000",
			City:          "Niteroi",
			Neighborhood:  "Icarai",
			Items: []CheckoutItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, decimal.NewFromInt(100).Equal(resp.Subtotal))
		assert.True(t, decimal.NewFromInt(10).Equal(resp.DeliveryFee))
		assert.Equal(t, string(delivery.FeeSourceDefault), resp.FeeSource)
		assert.True(t, decimal.NewFromInt(110).Equal(resp.Total))
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("applies percentage coupon without consuming it", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := activeProduct(t, f.tenant.ID, "PIZZA-G", 80)

		coupon, err := promotion.NewCoupon(f.tenant.ID, "DEZ10", promotion.DiscountPercentage, decimal.NewFromInt(10))
		require.NoError(t, err)

		f.productRepo.On("FindByIDForTenant", ctx, f.tenant.ID, product.ID).Return(product, nil)
		f.couponRepo.On("FindByCode", ctx, f.tenant.ID, "DEZ10").Return(coupon, nil)
		f.cityRepo.On("FindByName", ctx, f.tenant.ID, "Rio de Janeiro").Return(nil, shared.ErrNotFound)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

		resp, err := f.service.Checkout(ctx, f.tenant, CheckoutRequest{
			CustomerName:  "Joao Lima",
			CustomerPhone: "21988887777",
			City:          "Rio de Janeiro",
			CouponCode:    "dez10",
			Items: []CheckoutItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "DEZ10", resp.CouponCode)
		assert.True(t, decimal.NewFromInt(8).Equal(resp.Discount), "10%% of 80, got %s", resp.Discount)
		// 80 - 8 + 10 default fee
		assert.True(t, decimal.NewFromInt(82).Equal(resp.Total))
		f.couponRepo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("prices complements into the line", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := activeProduct(t, f.tenant.ID, "BURGER", 30)

		group, err := catalog.NewComplementGroup(f.tenant.ID, product.ID, "Extras", 0, 2, false)
		require.NoError(t, err)
		extra, err := group.AddItem("Bacon", decimal.NewFromInt(5))
		require.NoError(t, err)

		f.productRepo.On("FindByIDForTenant", ctx, f.tenant.ID, product.ID).Return(product, nil)
		f.groupRepo.On("FindByProduct", ctx, f.tenant.ID, product.ID).Return([]catalog.ComplementGroup{*group}, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

		resp, err := f.service.Checkout(ctx, f.tenant, CheckoutRequest{
			CustomerName:  "Ana Costa",
			CustomerPhone: "21977776666",
			Items: []CheckoutItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2), Complements: []uuid.UUID{extra.ID}},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, decimal.NewFromInt(35).Equal(resp.Items[0].UnitPrice))
		assert.True(t, decimal.NewFromInt(70).Equal(resp.Subtotal))
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := activeProduct(t, f.tenant.ID, "OLD-ITEM", 20)
		product.Deactivate()

		f.productRepo.On("FindByIDForTenant", ctx, f.tenant.ID, product.ID).Return(product, nil)

		_, err := f.service.Checkout(ctx, f.tenant, CheckoutRequest{
			CustomerName:  "Carlos Dias",
			CustomerPhone: "21966665555",
			Items: []CheckoutItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects coupon below minimum purchase", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := activeProduct(t, f.tenant.ID, "ESFIHA", 10)

		coupon, err := promotion.NewCoupon(f.tenant.ID, "GRANDE", promotion.DiscountFixed, decimal.NewFromInt(15))
		require.NoError(t, err)
		require.NoError(t, coupon.Update("", promotion.DiscountFixed, decimal.NewFromInt(15), decimal.NewFromInt(50), nil, nil))

		f.productRepo.On("FindByIDForTenant", ctx, f.tenant.ID, product.ID).Return(product, nil)
		f.couponRepo.On("FindByCode", ctx, f.tenant.ID, "GRANDE").Return(coupon, nil)

		_, err = f.service.Checkout(ctx, f.tenant, CheckoutRequest{
			CustomerName:  "Paula Reis",
			CustomerPhone: "21955554444",
			CouponCode:    "GRANDE",
			Items: []CheckoutItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BELOW_MINIMUM_PURCHASE", domainErr.Code)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown coupon code maps to coupon not found", func(t *testing.T) {
		f := newCheckoutFixture(t)
		product := activeProduct(t, f.tenant.ID, "COXINHA", 8)

		f.productRepo.On("FindByIDForTenant", ctx, f.tenant.ID, product.ID).Return(product, nil)
		f.couponRepo.On("FindByCode", ctx, f.tenant.ID, "NADA").Return(nil, shared.ErrNotFound)

		_, err := f.service.Checkout(ctx, f.tenant, CheckoutRequest{
			CustomerName:  "Rafa Melo",
			CustomerPhone: "21944443333",
			CouponCode:    "nada",
			Items: []CheckoutItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.ErrorIs(t, err, promotion.ErrCouponNotFound)
	})
}

type confirmFixture struct {
	tenantID       uuid.UUID
	orderRepo      *MockOrderRepository
	couponRepo     *MockCouponRepository
	productRepo    *MockProductRepository
	ingredientRepo *MockIngredientRepository
	movementRepo   *MockMovementRepository
	service        *OrderService
}

func newConfirmFixture() *confirmFixture {
	f := &confirmFixture{
		tenantID:       uuid.New(),
		orderRepo:      new(MockOrderRepository),
		couponRepo:     new(MockCouponRepository),
		productRepo:    new(MockProductRepository),
		ingredientRepo: new(MockIngredientRepository),
		movementRepo:   new(MockMovementRepository),
	}
	scope := NewNoOpTransactionScope(f.orderRepo, f.couponRepo, f.productRepo, f.ingredientRepo, f.movementRepo)
	f.service = NewOrderService(f.orderRepo, scope)
	return f
}

func pendingOrder(t *testing.T, tenantID uuid.UUID, items []ordering.OrderItem, coupon ordering.CouponSnapshot) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder(tenantID, "Cliente Teste", "21900000000", items,
		ordering.DeliveryInfo{Fee: decimal.NewFromInt(5)}, coupon, "")
	require.NoError(t, err)
	order.Number = 42
	return order
}

func TestOrderService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts stock and cascades to ingredient", func(t *testing.T) {
		f := newConfirmFixture()

		product := activeProduct(t, f.tenantID, "ACAI-500", 25)
		require.NoError(t, product.IncreaseStock(decimal.NewFromInt(10)))

		ingredient, err := inventory.NewIngredient(f.tenantID, "Polpa de acai", nil)
		require.NoError(t, err)
		require.NoError(t, ingredient.IncreaseStock(decimal.NewFromInt(4)))
		require.NoError(t, product.LinkIngredient(ingredient.ID, decimal.NewFromFloat(0.5), true))

		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: decimal.NewFromInt(4), UnitPrice: product.Price},
		}, ordering.CouponSnapshot{Discount: decimal.Zero})

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)
		f.productRepo.On("FindByIDForTenant", ctx, f.tenantID, product.ID).Return(product, nil)
		f.productRepo.On("SaveWithLock", ctx, product).Return(nil)
		f.ingredientRepo.On("FindByID", ctx, f.tenantID, ingredient.ID).Return(ingredient, nil)
		f.ingredientRepo.On("SaveWithLock", ctx, ingredient).Return(nil)
		f.movementRepo.On("Append", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)
		f.orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		resp, err := f.service.Confirm(ctx, f.tenantID, order.ID)

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.NotNil(t, resp.ConfirmedAt)
		assert.True(t, decimal.NewFromInt(6).Equal(product.CurrentStock))
		assert.True(t, decimal.NewFromInt(2).Equal(ingredient.CurrentStock))
		f.movementRepo.AssertNumberOfCalls(t, "Append", 2)
	})

	t.Run("redeems applied coupon", func(t *testing.T) {
		f := newConfirmFixture()

		product := activeProduct(t, f.tenantID, "LANCHE", 20)
		require.NoError(t, product.IncreaseStock(decimal.NewFromInt(5)))

		couponID := uuid.New()
		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: decimal.NewFromInt(1), UnitPrice: product.Price},
		}, ordering.CouponSnapshot{CouponID: &couponID, Code: "PROMO5", Discount: decimal.NewFromInt(5)})

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)
		f.couponRepo.On("IncrementUsage", ctx, f.tenantID, couponID).Return(nil)
		f.productRepo.On("FindByIDForTenant", ctx, f.tenantID, product.ID).Return(product, nil)
		f.productRepo.On("SaveWithLock", ctx, product).Return(nil)
		f.movementRepo.On("Append", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)
		f.orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		_, err := f.service.Confirm(ctx, f.tenantID, order.ID)

		require.NoError(t, err)
		f.couponRepo.AssertExpectations(t)
	})

	t.Run("exhausted coupon blocks confirmation", func(t *testing.T) {
		f := newConfirmFixture()

		couponID := uuid.New()
		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: uuid.New(), ProductName: "X", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		}, ordering.CouponSnapshot{CouponID: &couponID, Code: "ESGOTADO", Discount: decimal.NewFromInt(2)})

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)
		f.couponRepo.On("IncrementUsage", ctx, f.tenantID, couponID).Return(promotion.ErrCouponExhausted)

		_, err := f.service.Confirm(ctx, f.tenantID, order.ID)

		require.ErrorIs(t, err, promotion.ErrCouponExhausted)
		f.productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock blocks confirmation", func(t *testing.T) {
		f := newConfirmFixture()

		product := activeProduct(t, f.tenantID, "POUCO", 15)
		require.NoError(t, product.IncreaseStock(decimal.NewFromInt(1)))

		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: decimal.NewFromInt(3), UnitPrice: product.Price},
		}, ordering.CouponSnapshot{Discount: decimal.Zero})

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)
		f.productRepo.On("FindByIDForTenant", ctx, f.tenantID, product.ID).Return(product, nil)

		_, err := f.service.Confirm(ctx, f.tenantID, order.ID)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		f.productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.movementRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("already confirmed order cannot confirm again", func(t *testing.T) {
		f := newConfirmFixture()

		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: uuid.New(), ProductName: "Y", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		}, ordering.CouponSnapshot{Discount: decimal.Zero})
		require.NoError(t, order.TransitionTo(ordering.OrderStatusConfirmed))

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)

		_, err := f.service.Confirm(ctx, f.tenantID, order.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", domainErr.Code)
	})
}

func TestOrderService_AdvanceStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("walks confirmed order to completion", func(t *testing.T) {
		f := newConfirmFixture()

		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: uuid.New(), ProductName: "Z", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		}, ordering.CouponSnapshot{Discount: decimal.Zero})
		require.NoError(t, order.TransitionTo(ordering.OrderStatusConfirmed))

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		for _, status := range []string{"preparing", "delivering", "completed"} {
			resp, err := f.service.AdvanceStatus(ctx, f.tenantID, order.ID, AdvanceStatusRequest{Status: status})
			require.NoError(t, err)
			assert.Equal(t, status, resp.Status)
		}
		assert.NotNil(t, order.CompletedAt)
		assert.False(t, order.IsOpen())
	})

	t.Run("cancelling a pending order releases nothing", func(t *testing.T) {
		f := newConfirmFixture()

		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: uuid.New(), ProductName: "W", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(12)},
		}, ordering.CouponSnapshot{Discount: decimal.Zero})

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		resp, err := f.service.AdvanceStatus(ctx, f.tenantID, order.ID, AdvanceStatusRequest{Status: "cancelled"})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		f.productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.movementRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("completed order cannot move", func(t *testing.T) {
		f := newConfirmFixture()

		order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
			{ProductID: uuid.New(), ProductName: "V", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(9)},
		}, ordering.CouponSnapshot{Discount: decimal.Zero})
		require.NoError(t, order.TransitionTo(ordering.OrderStatusConfirmed))
		require.NoError(t, order.TransitionTo(ordering.OrderStatusPreparing))
		require.NoError(t, order.TransitionTo(ordering.OrderStatusDelivering))
		require.NoError(t, order.TransitionTo(ordering.OrderStatusCompleted))

		f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)

		_, err := f.service.AdvanceStatus(ctx, f.tenantID, order.ID, AdvanceStatusRequest{Status: "cancelled"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", domainErr.Code)
	})
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.EventType())
	}
	return out
}

func TestOrderService_PublishesEvents(t *testing.T) {
	ctx := context.Background()

	f := newConfirmFixture()
	publisher := &capturingPublisher{}
	scope := NewNoOpTransactionScope(f.orderRepo, f.couponRepo, f.productRepo, f.ingredientRepo, f.movementRepo)
	service := NewOrderService(f.orderRepo, scope, WithOrderEventPublisher(publisher))

	order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
		{ProductID: uuid.New(), ProductName: "Y", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
	}, ordering.CouponSnapshot{Discount: decimal.Zero})
	order.ClearDomainEvents()

	f.orderRepo.On("FindByID", ctx, f.tenantID, order.ID).Return(order, nil)
	f.orderRepo.On("SaveWithLock", ctx, order).Return(nil)

	_, err := service.AdvanceStatus(ctx, f.tenantID, order.ID, AdvanceStatusRequest{Status: "cancelled"})

	require.NoError(t, err)
	assert.Contains(t, publisher.types(), ordering.EventTypeOrderStatusChanged)
	assert.Empty(t, order.GetDomainEvents())
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	f := newConfirmFixture()

	order := pendingOrder(t, f.tenantID, []ordering.OrderItem{
		{ProductID: uuid.New(), ProductName: "U", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
	}, ordering.CouponSnapshot{Discount: decimal.Zero})

	f.orderRepo.On("FindAll", ctx, f.tenantID, mock.AnythingOfType("ordering.OrderFilter")).
		Return([]*ordering.Order{order}, int64(1), nil)

	result, err := f.service.List(ctx, f.tenantID, OrderListFilter{Status: "pending"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(42), result.Items[0].Number)
}

func TestOrderTimestamps(t *testing.T) {
	order := pendingOrder(t, uuid.New(), []ordering.OrderItem{
		{ProductID: uuid.New(), ProductName: "T", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
	}, ordering.CouponSnapshot{Discount: decimal.Zero})

	before := time.Now()
	require.NoError(t, order.TransitionTo(ordering.OrderStatusConfirmed))
	require.NotNil(t, order.ConfirmedAt)
	assert.False(t, order.ConfirmedAt.Before(before))
}
