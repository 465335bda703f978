package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/delivery"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/ordering"
	"github.com/pedezap/backend/internal/domain/promotion"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// complementSnapshot is the per-item record of a chosen complement,
// serialized to JSON on the order line
type complementSnapshot struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CheckoutService turns a storefront cart into a pending order. It
// snapshots product names, prices and chosen complements, validates the
// coupon without consuming it and resolves the delivery fee through the
// neighborhood hierarchy. Stock is not touched here; counters move when
// the order is confirmed.
type CheckoutService struct {
	orderRepo   ordering.OrderRepository
	productRepo catalog.ProductRepository
	groupRepo   catalog.ComplementGroupRepository
	couponRepo  promotion.CouponRepository
	feeResolver *delivery.FeeResolver
	events      shared.EventPublisher
}

// CheckoutServiceOption configures optional CheckoutService collaborators
type CheckoutServiceOption func(*CheckoutService)

// WithCheckoutEventPublisher publishes the order-placed event once the
// pending order is saved
func WithCheckoutEventPublisher(p shared.EventPublisher) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.events = p
	}
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	groupRepo catalog.ComplementGroupRepository,
	couponRepo promotion.CouponRepository,
	feeResolver *delivery.FeeResolver,
	opts ...CheckoutServiceOption,
) *CheckoutService {
	s := &CheckoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		groupRepo:   groupRepo,
		couponRepo:  couponRepo,
		feeResolver: feeResolver,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout creates a pending order for the tenant's storefront
func (s *CheckoutService) Checkout(ctx context.Context, tenant *identity.Tenant, req CheckoutRequest) (*OrderResponse, error) {
	items, subtotal, err := s.buildItems(ctx, tenant.ID, req.Items)
	if err != nil {
		return nil, err
	}

	coupon, err := s.snapshotCoupon(ctx, tenant.ID, req.CouponCode, subtotal)
	if err != nil {
		return nil, err
	}

	quote, err := s.feeResolver.Resolve(ctx, tenant.ID, delivery.FeeQuery{
		CityName:         req.City,
		NeighborhoodName: req.Neighborhood,
	}, delivery.TenantDefaults{
		Fee:           tenant.DefaultFee,
		EstimatedTime: tenant.DefaultTime,
	})
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(tenant.ID, req.CustomerName, req.CustomerPhone, items, ordering.DeliveryInfo{
		AddressLine:  req.AddressLine,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		Fee:          quote.Fee,
		FeeSource:    string(quote.Source),
		Estimate:     quote.EstimatedTime,
	}, coupon, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	publishOrderEvents(ctx, s.events, order)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// buildItems resolves every cart line against the catalog and freezes
// names and prices. Chosen complements are priced into the line and
// recorded as a JSON snapshot.
func (s *CheckoutService) buildItems(ctx context.Context, tenantID uuid.UUID, lines []CheckoutItemRequest) ([]ordering.OrderItem, decimal.Decimal, error) {
	items := make([]ordering.OrderItem, 0, len(lines))
	subtotal := decimal.Zero

	for _, line := range lines {
		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, line.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if !product.IsActive() {
			return nil, decimal.Zero, shared.NewDomainError("PRODUCT_UNAVAILABLE",
				"Product "+product.Name+" is not available")
		}

		unitPrice := product.Price
		complementsJSON := ""
		if len(line.Complements) > 0 {
			snapshots, extra, err := s.snapshotComplements(ctx, tenantID, product.ID, line.Complements)
			if err != nil {
				return nil, decimal.Zero, err
			}
			unitPrice = unitPrice.Add(extra)
			encoded, err := json.Marshal(snapshots)
			if err != nil {
				return nil, decimal.Zero, err
			}
			complementsJSON = string(encoded)
		}

		item := ordering.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			Complements: complementsJSON,
			Note:        line.Note,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	return items, subtotal, nil
}

// snapshotComplements validates that every chosen complement belongs to
// one of the product's groups and is active, and sums their prices
func (s *CheckoutService) snapshotComplements(ctx context.Context, tenantID, productID uuid.UUID, chosen []uuid.UUID) ([]complementSnapshot, decimal.Decimal, error) {
	groups, err := s.groupRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	available := make(map[uuid.UUID]catalog.ComplementItem)
	for _, group := range groups {
		for _, item := range group.Items {
			if item.Active {
				available[item.ID] = item
			}
		}
	}

	snapshots := make([]complementSnapshot, 0, len(chosen))
	extra := decimal.Zero
	for _, id := range chosen {
		item, ok := available[id]
		if !ok {
			return nil, decimal.Zero, shared.NewDomainError("COMPLEMENT_UNAVAILABLE",
				"Chosen complement is not available for this product")
		}
		snapshots = append(snapshots, complementSnapshot{ID: item.ID, Name: item.Name, Price: item.Price})
		extra = extra.Add(item.Price)
	}

	return snapshots, extra, nil
}

// snapshotCoupon checks the coupon against the cart subtotal and freezes
// the computed discount. The usage counter only moves at confirmation,
// so an abandoned pending order never burns a redemption.
func (s *CheckoutService) snapshotCoupon(ctx context.Context, tenantID uuid.UUID, code string, subtotal decimal.Decimal) (ordering.CouponSnapshot, error) {
	if strings.TrimSpace(code) == "" {
		return ordering.CouponSnapshot{Discount: decimal.Zero}, nil
	}

	coupon, err := s.couponRepo.FindByCode(ctx, tenantID, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ordering.CouponSnapshot{}, promotion.ErrCouponNotFound
		}
		return ordering.CouponSnapshot{}, err
	}

	if err := coupon.CheckUsable(subtotal, time.Now()); err != nil {
		return ordering.CouponSnapshot{}, err
	}

	return ordering.CouponSnapshot{
		CouponID: &coupon.ID,
		Code:     coupon.Code,
		Discount: coupon.ComputeDiscount(subtotal),
	}, nil
}
