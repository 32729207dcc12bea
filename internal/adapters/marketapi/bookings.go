package marketapi

import (
	"context"
	"net/http"

	"rentwise-portal/internal/core/domain"
)

// BookingRequest books a viewing
type BookingRequest struct {
	PropertyID string `json:"property_id"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	Virtual    bool   `json:"virtual"`
	Notes      string `json:"notes,omitempty"`
}

// BookingUpdate reschedules a viewing or records its outcome. Empty fields are left alone.
type BookingUpdate struct {
	Date     string            `json:"date,omitempty"`
	TimeSlot string            `json:"time_slot,omitempty"`
	Status   domain.TourStatus `json:"status,omitempty"`
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]domain.Tour, error) {
	var out []domain.Tour
	err := c.do(ctx, call{
		op:      "ListBookings",
		failure: "Failed to load tours",
		method:  http.MethodGet,
		path:    "/bookings",
		token:   token,
	}, &out)
	return out, err
}

func (c *Client) GetBooking(ctx context.Context, token, id string) (*domain.Tour, error) {
	return c.tourCall(ctx, call{
		op:      "GetBooking",
		failure: "Failed to load tour",
		method:  http.MethodGet,
		path:    "/bookings/" + escape(id),
		token:   token,
	})
}

func (c *Client) CreateBooking(ctx context.Context, token string, req BookingRequest) (*domain.Tour, error) {
	return c.tourCall(ctx, call{
		op:      "CreateBooking",
		failure: "Failed to book tour",
		method:  http.MethodPost,
		path:    "/bookings",
		token:   token,
		body:    req,
	})
}

func (c *Client) UpdateBooking(ctx context.Context, token, id string, upd BookingUpdate) (*domain.Tour, error) {
	return c.tourCall(ctx, call{
		op:      "UpdateBooking",
		failure: "Failed to update tour",
		method:  http.MethodPut,
		path:    "/bookings/" + escape(id),
		token:   token,
		body:    upd,
	})
}

func (c *Client) CancelBooking(ctx context.Context, token, id string) (*domain.Tour, error) {
	return c.tourCall(ctx, call{
		op:      "CancelBooking",
		failure: "Failed to cancel tour",
		method:  http.MethodPut,
		path:    "/bookings/" + escape(id) + "/cancel",
		token:   token,
	})
}

func (c *Client) tourCall(ctx context.Context, cl call) (*domain.Tour, error) {
	var out domain.Tour
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
