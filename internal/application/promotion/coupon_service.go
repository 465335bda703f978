package promotion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/promotion"
	"github.com/pedezap/backend/internal/domain/shared"
)

// CouponService handles coupon management and storefront validation
type CouponService struct {
	couponRepo promotion.CouponRepository
}

// NewCouponService creates a new CouponService
func NewCouponService(couponRepo promotion.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Create adds a coupon
func (s *CouponService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCouponRequest) (*CouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := s.couponRepo.ExistsByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Coupon with this code already exists")
	}

	coupon, err := promotion.NewCoupon(tenantID, req.Code, promotion.DiscountType(req.DiscountType), req.DiscountValue)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || !req.MinimumPurchase.IsZero() || req.ExpiresAt != nil || req.UsageCap != nil {
		if err := coupon.Update(req.Description, coupon.DiscountType, coupon.DiscountValue, req.MinimumPurchase, req.ExpiresAt, req.UsageCap); err != nil {
			return nil, err
		}
	}

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}

	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// List returns coupons with pagination
func (s *CouponService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[CouponResponse], error) {
	coupons, err := s.couponRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.couponRepo.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]CouponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		items = append(items, ToCouponResponse(coupon))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Get returns a single coupon
func (s *CouponService) Get(ctx context.Context, tenantID, id uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// Update changes a coupon's terms
func (s *CouponService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCouponRequest) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := coupon.Update(req.Description, promotion.DiscountType(req.DiscountType), req.DiscountValue, req.MinimumPurchase, req.ExpiresAt, req.UsageCap); err != nil {
		return nil, err
	}

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}

	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// Toggle flips a coupon's active flag
func (s *CouponService) Toggle(ctx context.Context, tenantID, id uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	coupon.Toggle()

	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}

	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// Delete removes a coupon
func (s *CouponService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.couponRepo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.couponRepo.Delete(ctx, tenantID, id)
}

// Validate checks a coupon against a purchase amount and computes the
// discount. It never consumes a use; redemption happens when the order
// is confirmed.
func (s *CouponService) Validate(ctx context.Context, tenantID uuid.UUID, req ValidateCouponRequest) (*ValidateCouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	coupon, err := s.couponRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, promotion.ErrCouponNotFound
		}
		return nil, err
	}

	if err := coupon.CheckUsable(req.PurchaseAmount, time.Now()); err != nil {
		return nil, err
	}

	discount := coupon.ComputeDiscount(req.PurchaseAmount)

	return &ValidateCouponResponse{
		CouponID:      coupon.ID,
		Code:          coupon.Code,
		DiscountType:  string(coupon.DiscountType),
		DiscountValue: coupon.DiscountValue,
		Discount:      discount,
		FinalAmount:   req.PurchaseAmount.Sub(discount),
	}, nil
}
