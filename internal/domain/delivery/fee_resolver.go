package delivery

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FeeSource identifies which tier of the hierarchy produced a quote
type FeeSource string

const (
	FeeSourceNeighborhood FeeSource = "neighborhood"
	FeeSourceGroup        FeeSource = "group"
	FeeSourceCity         FeeSource = "city"
	FeeSourceDefault      FeeSource = "default"
)

// FeeQuote is the result of resolving a delivery fee for an address.
// City is the resolved city, nil when the quote fell back to the tenant
// default.
type FeeQuote struct {
	Fee           decimal.Decimal
	EstimatedTime string
	Source        FeeSource
	City          *City
}

// FeeQuery identifies the address being quoted. The city resolves by id
// when set, else by name; the neighborhood by id when set, else by name
// within the resolved city.
type FeeQuery struct {
	CityID           uuid.UUID
	CityName         string
	NeighborhoodID   uuid.UUID
	NeighborhoodName string
}

// TenantDefaults carries the tenant-level fallback values
type TenantDefaults struct {
	Fee           decimal.Decimal
	EstimatedTime string
}

// FeeResolver resolves delivery fees walking the hierarchy from the most
// specific tier to the least: personalized neighborhood fee, then the
// neighborhood's group, then the city, then the tenant default.
type FeeResolver struct {
	cities        CityRepository
	neighborhoods NeighborhoodRepository
	groups        NeighborhoodGroupRepository
}

// NewFeeResolver creates a fee resolver backed by the given repositories
func NewFeeResolver(
	cities CityRepository,
	neighborhoods NeighborhoodRepository,
	groups NeighborhoodGroupRepository,
) *FeeResolver {
	return &FeeResolver{
		cities:        cities,
		neighborhoods: neighborhoods,
		groups:        groups,
	}
}

// Resolve returns the delivery fee quote for the queried address. Name
// matching is case-insensitive and happens at the storage layer. An
// unknown or inactive city falls through to the tenant default; an
// unknown neighborhood falls through to the city fee.
func (r *FeeResolver) Resolve(ctx context.Context, tenantID uuid.UUID, q FeeQuery, defaults TenantDefaults) (FeeQuote, error) {
	fallback := FeeQuote{
		Fee:           defaults.Fee,
		EstimatedTime: defaults.EstimatedTime,
		Source:        FeeSourceDefault,
	}

	city, err := r.resolveCity(ctx, tenantID, q)
	if err != nil {
		return FeeQuote{}, err
	}
	if city == nil || !city.Active {
		return fallback, nil
	}

	cityQuote := FeeQuote{
		Fee:           city.Fee,
		EstimatedTime: estimateOr(city.EstimatedTime, defaults.EstimatedTime),
		Source:        FeeSourceCity,
		City:          city,
	}

	hood, err := r.resolveNeighborhood(ctx, tenantID, city, q)
	if err != nil {
		return FeeQuote{}, err
	}
	if hood == nil || !hood.Active {
		return cityQuote, nil
	}

	if hood.HasPersonalizedFee() {
		quote := FeeQuote{
			Fee:           *hood.Fee,
			EstimatedTime: cityQuote.EstimatedTime,
			Source:        FeeSourceNeighborhood,
			City:          city,
		}
		if hood.EstimatedTime != nil && *hood.EstimatedTime != "" {
			quote.EstimatedTime = *hood.EstimatedTime
		}
		return quote, nil
	}

	if hood.GroupID != nil {
		group, err := r.groups.FindByID(ctx, tenantID, *hood.GroupID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return cityQuote, nil
			}
			return FeeQuote{}, err
		}
		if group.Active {
			return FeeQuote{
				Fee:           group.Fee,
				EstimatedTime: estimateOr(group.EstimatedTime, cityQuote.EstimatedTime),
				Source:        FeeSourceGroup,
				City:          city,
			}, nil
		}
	}

	return cityQuote, nil
}

// resolveCity finds the queried city by id first, then by name. A query
// naming neither, or naming a city that does not exist, yields nil and
// the caller falls through to the tenant default.
func (r *FeeResolver) resolveCity(ctx context.Context, tenantID uuid.UUID, q FeeQuery) (*City, error) {
	var (
		city *City
		err  error
	)
	switch {
	case q.CityID != uuid.Nil:
		city, err = r.cities.FindByID(ctx, tenantID, q.CityID)
	case q.CityName != "":
		city, err = r.cities.FindByName(ctx, tenantID, q.CityName)
	default:
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return city, nil
}

// resolveNeighborhood finds the queried neighborhood by id first, then
// by name within the resolved city. A neighborhood belonging to a
// different city is treated as not found.
func (r *FeeResolver) resolveNeighborhood(ctx context.Context, tenantID uuid.UUID, city *City, q FeeQuery) (*Neighborhood, error) {
	var (
		hood *Neighborhood
		err  error
	)
	switch {
	case q.NeighborhoodID != uuid.Nil:
		hood, err = r.neighborhoods.FindByID(ctx, tenantID, q.NeighborhoodID)
	case q.NeighborhoodName != "":
		hood, err = r.neighborhoods.FindByNameInCity(ctx, tenantID, city.GetID(), q.NeighborhoodName)
	default:
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if hood.CityID != city.GetID() {
		return nil, nil
	}
	return hood, nil
}

func estimateOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
