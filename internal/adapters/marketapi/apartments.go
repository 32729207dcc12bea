package marketapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"rentwise-portal/internal/core/domain"
)

// ApartmentInput is the body a landlord sends to create or edit a listing
type ApartmentInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Community   string   `json:"community,omitempty"`
	City        string   `json:"city,omitempty"`
	Type        string   `json:"type,omitempty"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	AreaSqft    float64  `json:"area_sqft,omitempty"`
	Price       float64  `json:"price"`
	Furnished   bool     `json:"furnished"`
	Latitude    float64  `json:"latitude,omitempty"`
	Longitude   float64  `json:"longitude,omitempty"`
	Images      []string `json:"images,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

func apartmentQuery(f domain.ApartmentFilter) url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("search", f.Query)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Community != "" {
		q.Set("community", f.Community)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Bedrooms != nil {
		q.Set("bedrooms", strconv.Itoa(*f.Bedrooms))
	}
	if f.Furnished != nil {
		q.Set("furnished", strconv.FormatBool(*f.Furnished))
	}
	if f.LandlordID != "" {
		q.Set("landlord_id", f.LandlordID)
	}
	return q
}

// ListApartments searches listings. token may be empty for public reads.
func (c *Client) ListApartments(ctx context.Context, token string, filter domain.ApartmentFilter) ([]domain.Apartment, error) {
	var out []domain.Apartment
	err := c.do(ctx, call{
		op:      "ListApartments",
		failure: "Failed to load apartments",
		method:  http.MethodGet,
		path:    "/apartments",
		query:   apartmentQuery(filter),
		token:   token,
	}, &out)
	return out, err
}

func (c *Client) GetApartment(ctx context.Context, token, id string) (*domain.Apartment, error) {
	var out domain.Apartment
	err := c.do(ctx, call{
		op:      "GetApartment",
		failure: "Failed to load apartment",
		method:  http.MethodGet,
		path:    "/apartments/" + escape(id),
		token:   token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateApartment(ctx context.Context, token string, in ApartmentInput) (*domain.Apartment, error) {
	var out domain.Apartment
	err := c.do(ctx, call{
		op:      "CreateApartment",
		failure: "Failed to create apartment",
		method:  http.MethodPost,
		path:    "/apartments",
		token:   token,
		body:    in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateApartment(ctx context.Context, token, id string, in ApartmentInput) (*domain.Apartment, error) {
	var out domain.Apartment
	err := c.do(ctx, call{
		op:      "UpdateApartment",
		failure: "Failed to update apartment",
		method:  http.MethodPut,
		path:    "/apartments/" + escape(id),
		token:   token,
		body:    in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteApartment(ctx context.Context, token, id string) error {
	return c.do(ctx, call{
		op:      "DeleteApartment",
		failure: "Failed to delete apartment",
		method:  http.MethodDelete,
		path:    "/apartments/" + escape(id),
		token:   token,
	}, nil)
}
