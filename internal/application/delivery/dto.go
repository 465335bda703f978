package delivery

import (
	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/delivery"
	"github.com/shopspring/decimal"
)

// CityRequest creates or updates a delivery city
type CityRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	State         string          `json:"state" binding:"required,uf"`
	Fee           decimal.Decimal `json:"fee" binding:"required"`
	EstimatedTime string          `json:"estimated_time" binding:"max=20"`
}

// CityResponse represents a city in API responses
type CityResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	State         string          `json:"state"`
	Fee           decimal.Decimal `json:"fee"`
	EstimatedTime string          `json:"estimated_time"`
	Active        bool            `json:"active"`
	Neighborhoods int64           `json:"neighborhoods"`
}

// ToCityResponse converts a domain city to its API shape
func ToCityResponse(c *delivery.City, neighborhoods int64) CityResponse {
	return CityResponse{
		ID:            c.ID,
		Name:          c.Name,
		State:         c.State,
		Fee:           c.Fee,
		EstimatedTime: c.EstimatedTime,
		Active:        c.Active,
		Neighborhoods: neighborhoods,
	}
}

// NeighborhoodRequest creates a neighborhood inside a city
type NeighborhoodRequest struct {
	CityID uuid.UUID `json:"city_id" binding:"required"`
	Name   string    `json:"name" binding:"required,min=1,max=100"`
}

// NeighborhoodFeeRequest sets or clears the personalized fee
type NeighborhoodFeeRequest struct {
	Fee           *decimal.Decimal `json:"fee"`
	EstimatedTime string           `json:"estimated_time" binding:"max=20"`
}

// NeighborhoodGroupAssignRequest places the neighborhood in a group
type NeighborhoodGroupAssignRequest struct {
	GroupID *uuid.UUID `json:"group_id"`
}

// NeighborhoodResponse represents a neighborhood in API responses
type NeighborhoodResponse struct {
	ID            uuid.UUID        `json:"id"`
	CityID        uuid.UUID        `json:"city_id"`
	GroupID       *uuid.UUID       `json:"group_id,omitempty"`
	Name          string           `json:"name"`
	Fee           *decimal.Decimal `json:"fee,omitempty"`
	EstimatedTime *string          `json:"estimated_time,omitempty"`
	Active        bool             `json:"active"`
}

// ToNeighborhoodResponse converts a domain neighborhood to its API shape
func ToNeighborhoodResponse(n *delivery.Neighborhood) NeighborhoodResponse {
	return NeighborhoodResponse{
		ID:            n.ID,
		CityID:        n.CityID,
		GroupID:       n.GroupID,
		Name:          n.Name,
		Fee:           n.Fee,
		EstimatedTime: n.EstimatedTime,
		Active:        n.Active,
	}
}

// GroupRequest creates or updates a neighborhood fee group
type GroupRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	Fee           decimal.Decimal `json:"fee" binding:"required"`
	EstimatedTime string          `json:"estimated_time" binding:"max=20"`
}

// GroupResponse represents a fee group in API responses
type GroupResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Fee           decimal.Decimal `json:"fee"`
	EstimatedTime string          `json:"estimated_time"`
	Active        bool            `json:"active"`
}

// ToGroupResponse converts a domain group to its API shape
func ToGroupResponse(g *delivery.NeighborhoodGroup) GroupResponse {
	return GroupResponse{
		ID:            g.ID,
		Name:          g.Name,
		Fee:           g.Fee,
		EstimatedTime: g.EstimatedTime,
		Active:        g.Active,
	}
}

// FeeQuoteRequest asks for the delivery fee of an address. The city must
// be identified by id; the neighborhood by id when the storefront knows
// it, else by name.
type FeeQuoteRequest struct {
	CityID           string `json:"city_id" form:"city_id" binding:"required,uuid"`
	NeighborhoodID   string `json:"neighborhood_id" form:"neighborhood_id" binding:"omitempty,uuid"`
	NeighborhoodName string `json:"neighborhood" form:"neighborhood" binding:"max=100"`
}

// FeeQuoteResponse carries the resolved fee, its source tier and the
// city the quote was computed against. The city fields are empty when
// the quote fell back to the tenant default.
type FeeQuoteResponse struct {
	Fee           decimal.Decimal `json:"fee"`
	FeeFormatted  string          `json:"fee_formatted"`
	EstimatedTime string          `json:"estimated_time"`
	Source        string          `json:"source"`
	CityID        *uuid.UUID      `json:"city_id,omitempty"`
	CityName      string          `json:"city_name,omitempty"`
	State         string          `json:"state,omitempty"`
}
