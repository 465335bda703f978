package delivery

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/delivery"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/pedezap/backend/internal/domain/shared/valueobject"
)

// FeeQuoteService quotes delivery fees for storefront checkouts
type FeeQuoteService struct {
	resolver *delivery.FeeResolver
}

// NewFeeQuoteService creates a new FeeQuoteService
func NewFeeQuoteService(resolver *delivery.FeeResolver) *FeeQuoteService {
	return &FeeQuoteService{resolver: resolver}
}

// Quote resolves the delivery fee for the tenant and address. The city
// id is mandatory and ids are checked before any lookup; the tenant
// supplies the last-resort default fee and estimate.
func (s *FeeQuoteService) Quote(ctx context.Context, tenant *identity.Tenant, req FeeQuoteRequest) (*FeeQuoteResponse, error) {
	query, err := buildFeeQuery(req)
	if err != nil {
		return nil, err
	}

	quote, err := s.resolver.Resolve(ctx, tenant.ID, query, delivery.TenantDefaults{
		Fee:           tenant.DefaultFee,
		EstimatedTime: tenant.DefaultTime,
	})
	if err != nil {
		return nil, err
	}

	resp := &FeeQuoteResponse{
		Fee:           quote.Fee,
		FeeFormatted:  valueobject.FormatBRL(quote.Fee),
		EstimatedTime: quote.EstimatedTime,
		Source:        string(quote.Source),
	}
	if quote.City != nil {
		cityID := quote.City.ID
		resp.CityID = &cityID
		resp.CityName = quote.City.Name
		resp.State = quote.City.State
	}
	return resp, nil
}

func buildFeeQuery(req FeeQuoteRequest) (delivery.FeeQuery, error) {
	cityID, err := uuid.Parse(req.CityID)
	if err != nil {
		return delivery.FeeQuery{}, shared.NewDomainError("INVALID_CITY_ID", "City id is required and must be a valid UUID")
	}

	query := delivery.FeeQuery{
		CityID:           cityID,
		NeighborhoodName: req.NeighborhoodName,
	}
	if req.NeighborhoodID != "" {
		hoodID, err := uuid.Parse(req.NeighborhoodID)
		if err != nil {
			return delivery.FeeQuery{}, shared.NewDomainError("INVALID_NEIGHBORHOOD_ID", "Neighborhood id must be a valid UUID")
		}
		query.NeighborhoodID = hoodID
	}
	return query, nil
}
