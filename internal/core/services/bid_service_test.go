package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/core/domain"
)

func newBidService(api BidAPI) *BidService {
	return NewBidService(api, config.BidBoundsConfig{MinPercent: 0.70, MaxPercent: 1.00})
}

func askingPrice(v float64) *float64 { return &v }

func TestBidService_CreateRefusesOutOfRangeLocally(t *testing.T) {
	api := &fakeMarket{}
	svc := newBidService(api)

	_, err := svc.Create(context.Background(), "tok", CreateBidInput{
		ListingID:    "l1",
		Amount:       69999,
		Frequency:    domain.PayMonthly,
		Installments: 12,
		AskingPrice:  askingPrice(100000),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, ErrorMessage(err), "at least 70%")
	assert.Empty(t, api.Calls())
}

func TestBidService_CreateAtBoundarySends(t *testing.T) {
	api := &fakeMarket{}
	svc := newBidService(api)

	for _, amount := range []float64{70000, 100000} {
		bid, err := svc.Create(context.Background(), "tok", CreateBidInput{
			ListingID:    "l1",
			Amount:       amount,
			Frequency:    domain.PayQuarterly,
			Installments: 4,
			AskingPrice:  askingPrice(100000),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.BidOpen, bid.Status)
	}
	assert.Equal(t, []string{"CreateBid", "CreateBid"}, api.Calls())
}

func TestBidService_CreateWithoutAskingPriceDefersToServer(t *testing.T) {
	api := &fakeMarket{createBid: func(marketapi.CreateBidRequest) (*domain.Bid, error) {
		return nil, apiError("CreateBid", http.StatusUnprocessableEntity, "Bid is below the minimum")
	}}
	svc := newBidService(api)

	_, err := svc.Create(context.Background(), "tok", CreateBidInput{
		ListingID: "l1", Amount: 10, Frequency: domain.PayYearly, Installments: 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Bid is below the minimum", ErrorMessage(err))
	assert.Len(t, api.Calls(), 1)
}

func TestBidService_CreateRejectsBadTerms(t *testing.T) {
	svc := newBidService(&fakeMarket{})

	_, err := svc.Create(context.Background(), "tok", CreateBidInput{ListingID: "l1", Amount: 1000, Frequency: "WEEKLY", Installments: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)

	_, err = svc.Create(context.Background(), "tok", CreateBidInput{ListingID: "l1", Amount: 1000, Frequency: domain.PayMonthly, Installments: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInstalls)
}

func TestBidService_ConflictMessage(t *testing.T) {
	api := &fakeMarket{counterBid: func(string, marketapi.CounterBidRequest) (*domain.Bid, error) {
		return nil, apiError("CounterBid", http.StatusConflict, "stale version")
	}}
	svc := newBidService(api)

	_, err := svc.Counter(context.Background(), "tok", "b1", 90000, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, ConflictBidMessage, ErrorMessage(err))

	// the marketplace error is still reachable
	var apiErr *marketapi.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestBidService_ActDispatchesOneRequest(t *testing.T) {
	tests := []struct {
		action domain.BidAction
		call   string
		status domain.BidStatus
	}{
		{domain.BidActionCounter, "CounterBid", domain.BidCounterOffer},
		{domain.BidActionAccept, "AcceptBid", domain.BidAccepted},
		{domain.BidActionReject, "RejectBid", domain.BidRejected},
		{domain.BidActionWithdraw, "WithdrawBid", domain.BidWithdrawn},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			api := &fakeMarket{}
			svc := newBidService(api)

			bid, err := svc.Act(context.Background(), "tok", "b1", tt.action, ActionInput{Amount: 95000})
			require.NoError(t, err)
			assert.Equal(t, tt.status, bid.Status)
			assert.Equal(t, []string{tt.call}, api.Calls())
		})
	}
}

func TestBidService_CounterNeedsAmount(t *testing.T) {
	api := &fakeMarket{}
	_, err := newBidService(api).Counter(context.Background(), "tok", "b1", 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, api.Calls())
}

func TestBidService_UnauthorizedMapsToDomain(t *testing.T) {
	api := &fakeMarket{bidAction: func(op, _ string) (*domain.Bid, error) { return nil, unauthorized(op) }}
	_, err := newBidService(api).Accept(context.Background(), "tok", "b1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
