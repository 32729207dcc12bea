package marketapi

import (
	"context"
	"net/http"

	"rentwise-portal/internal/core/domain"
)

func (c *Client) AgentBids(ctx context.Context, token string) ([]domain.AgentBidRow, error) {
	var out []domain.AgentBidRow
	err := c.do(ctx, call{
		op:      "AgentBids",
		failure: "Failed to load agent bids",
		method:  http.MethodGet,
		path:    "/dashboard/agent/bids",
		token:   token,
	}, &out)
	return out, err
}

func (c *Client) AgentClients(ctx context.Context, token string) ([]domain.ClientRow, error) {
	var out []domain.ClientRow
	err := c.do(ctx, call{
		op:      "AgentClients",
		failure: "Failed to load clients",
		method:  http.MethodGet,
		path:    "/dashboard/agent/clients",
		token:   token,
	}, &out)
	return out, err
}

func (c *Client) AgentPerformance(ctx context.Context, token string) (*domain.PerformanceSummary, error) {
	var out domain.PerformanceSummary
	err := c.do(ctx, call{
		op:      "AgentPerformance",
		failure: "Failed to load performance summary",
		method:  http.MethodGet,
		path:    "/dashboard/agent/performance",
		token:   token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
