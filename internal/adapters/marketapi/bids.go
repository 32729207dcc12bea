package marketapi

import (
	"context"
	"net/http"
	"net/url"

	"rentwise-portal/internal/core/domain"
)

// CreateBidRequest places a new bid on a listing
type CreateBidRequest struct {
	ListingID    string                  `json:"listing_id"`
	Amount       float64                 `json:"amount"`
	Frequency    domain.PaymentFrequency `json:"payment_frequency"`
	Installments int                     `json:"installments"`
	Message      string                  `json:"message,omitempty"`
}

// CounterBidRequest answers a bid with a new amount
type CounterBidRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message,omitempty"`
}

// ListBids returns the caller's bids, or the bids of userID when it is set
func (c *Client) ListBids(ctx context.Context, token, userID string) ([]domain.Bid, error) {
	var q url.Values
	if userID != "" {
		q = url.Values{"userId": {userID}}
	}
	var out []domain.Bid
	err := c.do(ctx, call{
		op:      "ListBids",
		failure: "Failed to load bids",
		method:  http.MethodGet,
		path:    "/bids",
		query:   q,
		token:   token,
	}, &out)
	return out, err
}

func (c *Client) GetBid(ctx context.Context, token, id string) (*domain.Bid, error) {
	return c.bidCall(ctx, call{
		op:      "GetBid",
		failure: "Failed to load bid",
		method:  http.MethodGet,
		path:    "/bids/" + escape(id),
		token:   token,
	})
}

func (c *Client) CreateBid(ctx context.Context, token string, req CreateBidRequest) (*domain.Bid, error) {
	return c.bidCall(ctx, call{
		op:      "CreateBid",
		failure: "Failed to place bid",
		method:  http.MethodPost,
		path:    "/bids",
		token:   token,
		body:    req,
	})
}

func (c *Client) CounterBid(ctx context.Context, token, id string, req CounterBidRequest) (*domain.Bid, error) {
	return c.bidCall(ctx, call{
		op:      "CounterBid",
		failure: "Failed to send counter offer",
		method:  http.MethodPost,
		path:    "/bids/" + escape(id) + "/counter",
		token:   token,
		body:    req,
	})
}

func (c *Client) AcceptBid(ctx context.Context, token, id string) (*domain.Bid, error) {
	return c.bidCall(ctx, call{
		op:      "AcceptBid",
		failure: "Failed to accept bid",
		method:  http.MethodPost,
		path:    "/bids/" + escape(id) + "/accept",
		token:   token,
	})
}

func (c *Client) RejectBid(ctx context.Context, token, id string) (*domain.Bid, error) {
	return c.bidCall(ctx, call{
		op:      "RejectBid",
		failure: "Failed to reject bid",
		method:  http.MethodPost,
		path:    "/bids/" + escape(id) + "/reject",
		token:   token,
	})
}

func (c *Client) WithdrawBid(ctx context.Context, token, id string) (*domain.Bid, error) {
	return c.bidCall(ctx, call{
		op:      "WithdrawBid",
		failure: "Failed to withdraw bid",
		method:  http.MethodPost,
		path:    "/bids/" + escape(id) + "/withdraw",
		token:   token,
	})
}

func (c *Client) bidCall(ctx context.Context, cl call) (*domain.Bid, error) {
	var out domain.Bid
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
