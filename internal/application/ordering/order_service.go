package ordering

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/inventory"
	"github.com/pedezap/backend/internal/domain/ordering"
	"github.com/pedezap/backend/internal/domain/shared"
)

// OrderService manages the back-office side of orders: listing, lookup
// and the status lifecycle. Confirmation is the transactional step that
// redeems the coupon and deducts stock for every line.
type OrderService struct {
	orderRepo ordering.OrderRepository
	scope     TransactionScope
	events    shared.EventPublisher
}

// OrderServiceOption configures optional OrderService collaborators
type OrderServiceOption func(*OrderService)

// WithOrderEventPublisher publishes order lifecycle events after each
// successful state change
func WithOrderEventPublisher(p shared.EventPublisher) OrderServiceOption {
	return func(s *OrderService) {
		s.events = p
	}
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, scope TransactionScope, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{
		orderRepo: orderRepo,
		scope:     scope,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns orders for the tenant, optionally filtered by status
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, listFilter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	filter := shared.DefaultFilter()
	if listFilter.Page > 0 {
		filter.Page = listFilter.Page
	}
	if listFilter.PageSize > 0 {
		filter.PageSize = listFilter.PageSize
	}

	orders, total, err := s.orderRepo.FindAll(ctx, tenantID, ordering.OrderFilter{
		Filter: filter,
		Status: ordering.OrderStatus(listFilter.Status),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.Limit())
	return &result, nil
}

// Get returns a single order by ID
func (s *OrderService) Get(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByNumber returns a single order by its per-tenant sequential number
func (s *OrderService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number int64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// AdvanceStatus moves the order to the requested status. Confirmation
// goes through the transactional path; every other transition is a
// plain guarded save.
func (s *OrderService) AdvanceStatus(ctx context.Context, tenantID, id uuid.UUID, req AdvanceStatusRequest) (*OrderResponse, error) {
	target := ordering.OrderStatus(req.Status)
	if target == ordering.OrderStatusConfirmed {
		return s.Confirm(ctx, tenantID, id)
	}

	order, err := s.orderRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	publishOrderEvents(ctx, s.events, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Confirm accepts a pending order. Inside one transaction it redeems
// the applied coupon against its usage cap and deducts stock for every
// line, cascading to linked ingredients. Any shortfall or an exhausted
// coupon rolls the whole confirmation back and the order stays pending.
func (s *OrderService) Confirm(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	var response OrderResponse
	var confirmed *ordering.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(ordering.OrderStatusConfirmed); err != nil {
			return err
		}

		if order.Coupon.Applied() {
			if err := repos.CouponRepo().IncrementUsage(ctx, tenantID, *order.Coupon.CouponID); err != nil {
				return err
			}
		}

		sourceRef := strconv.FormatInt(order.Number, 10)
		for _, item := range order.Items {
			if err := s.deductLine(ctx, repos, tenantID, item, sourceRef); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		response = ToOrderResponse(order)
		confirmed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishOrderEvents(ctx, s.events, confirmed)

	return &response, nil
}

// publishOrderEvents drains the order's pending events into the bus.
// Publishing happens after the write committed, so subscribers only ever
// see durable state.
func publishOrderEvents(ctx context.Context, p shared.EventPublisher, order *ordering.Order) {
	if p == nil || order == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = p.Publish(ctx, events...)
	order.ClearDomainEvents()
}

// deductLine moves the product counter down by the line quantity and
// cascades to the linked ingredient when auto-deduct is enabled
func (s *OrderService) deductLine(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, item ordering.OrderItem, sourceRef string) error {
	product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, item.ProductID)
	if err != nil {
		return err
	}

	before := product.CurrentStock
	if err := product.DecreaseStock(item.Quantity); err != nil {
		return err
	}
	if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
		return err
	}

	movement, err := inventory.NewProductMovement(tenantID, product.ID, inventory.MovementOut,
		item.Quantity, before, product.CurrentStock, "order #"+sourceRef, inventory.SourceOrder, sourceRef)
	if err != nil {
		return err
	}
	if err := repos.MovementRepo().Append(ctx, movement); err != nil {
		return err
	}

	if !product.Ingredient.IsSet() || !product.Ingredient.AutoDeduct {
		return nil
	}

	ingredient, err := repos.IngredientRepo().FindByID(ctx, tenantID, *product.Ingredient.IngredientID)
	if err != nil {
		return err
	}

	scaled := item.Quantity.Mul(product.Ingredient.Ratio)
	ingredientBefore := ingredient.CurrentStock
	if err := ingredient.DecreaseStock(scaled); err != nil {
		return err
	}
	if err := repos.IngredientRepo().SaveWithLock(ctx, ingredient); err != nil {
		return err
	}

	cascade, err := inventory.NewIngredientMovement(tenantID, ingredient.ID, inventory.MovementOut,
		scaled, ingredientBefore, ingredient.CurrentStock,
		"auto-deduct from "+product.Code, inventory.SourceCascade, sourceRef)
	if err != nil {
		return err
	}
	return repos.MovementRepo().Append(ctx, cascade)
}
