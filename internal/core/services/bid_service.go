package services

import (
	"context"
	"fmt"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/logger"
	"rentwise-portal/internal/pkg/validate"
)

// ConflictBidMessage is shown when the other party changed the bid first
const ConflictBidMessage = "bid was changed by another party; refresh and try again"

// BidService sends bid actions to the marketplace, one request per action
type BidService struct {
	api    BidAPI
	minPct float64
	maxPct float64
}

// NewBidService creates a new bid service
func NewBidService(api BidAPI, bounds config.BidBoundsConfig) *BidService {
	return &BidService{api: api, minPct: bounds.MinPercent, maxPct: bounds.MaxPercent}
}

// CreateBidInput is a new bid. AskingPrice, when the caller knows it, enables the
// range check before anything is sent.
type CreateBidInput struct {
	ListingID    string                  `json:"listing_id" validate:"required"`
	Amount       float64                 `json:"amount" validate:"required,price"`
	Frequency    domain.PaymentFrequency `json:"payment_frequency" validate:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	Installments int                     `json:"installments" validate:"required,oneof=1 2 4 6 12"`
	Message      string                  `json:"message" validate:"max=500"`
	AskingPrice  *float64                `json:"asking_price,omitempty"`
}

// ActionInput carries the data an action needs; only counter uses it
type ActionInput struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message" validate:"max=500"`
}

// CheckAmount runs the bid range check with the configured bounds
func (s *BidService) CheckAmount(amount, askingPrice float64) validate.Result {
	if !validate.IsValidPrice(amount) {
		return validate.Result{Reason: "Enter a valid bid amount"}
	}
	return validate.BidAmount(amount, askingPrice, s.minPct, s.maxPct)
}

func (s *BidService) List(ctx context.Context, token, userID string) ([]domain.Bid, error) {
	bids, err := s.api.ListBids(ctx, token, userID)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	return bids, nil
}

func (s *BidService) Get(ctx context.Context, token, id string) (*domain.Bid, error) {
	bid, err := s.api.GetBid(ctx, token, id)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	return bid, nil
}

// Create places a bid. Obviously invalid input is refused without contacting the server.
func (s *BidService) Create(ctx context.Context, token string, in CreateBidInput) (*domain.Bid, error) {
	if !in.Frequency.Valid() {
		return nil, &Error{Kind: domain.ErrInvalidInput, Message: "Choose a payment frequency", Err: domain.ErrInvalidFrequency}
	}
	if !domain.ValidInstallments(in.Installments) {
		return nil, &Error{Kind: domain.ErrInvalidInput, Message: "Choose 1, 2, 4, 6 or 12 installments", Err: domain.ErrInvalidInstalls}
	}
	if !validate.IsValidPrice(in.Amount) {
		return nil, newError(domain.ErrInvalidInput, "Enter a valid bid amount")
	}
	if in.AskingPrice != nil {
		if res := s.CheckAmount(in.Amount, *in.AskingPrice); !res.Valid {
			return nil, newError(domain.ErrInvalidInput, res.Reason)
		}
	}

	bid, err := s.api.CreateBid(ctx, token, marketapi.CreateBidRequest{
		ListingID:    in.ListingID,
		Amount:       in.Amount,
		Frequency:    in.Frequency,
		Installments: in.Installments,
		Message:      in.Message,
	})
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	logger.FromContext(ctx).Info("bid placed", "bid_id", bid.ID, "listing_id", in.ListingID)
	return bid, nil
}

func (s *BidService) Counter(ctx context.Context, token, id string, amount float64, message string) (*domain.Bid, error) {
	if !validate.IsValidPrice(amount) {
		return nil, newError(domain.ErrInvalidInput, "Enter a valid counter amount")
	}
	bid, err := s.api.CounterBid(ctx, token, id, marketapi.CounterBidRequest{Amount: amount, Message: message})
	return s.result(ctx, bid, err, domain.BidActionCounter)
}

func (s *BidService) Accept(ctx context.Context, token, id string) (*domain.Bid, error) {
	bid, err := s.api.AcceptBid(ctx, token, id)
	return s.result(ctx, bid, err, domain.BidActionAccept)
}

func (s *BidService) Reject(ctx context.Context, token, id string) (*domain.Bid, error) {
	bid, err := s.api.RejectBid(ctx, token, id)
	return s.result(ctx, bid, err, domain.BidActionReject)
}

func (s *BidService) Withdraw(ctx context.Context, token, id string) (*domain.Bid, error) {
	bid, err := s.api.WithdrawBid(ctx, token, id)
	return s.result(ctx, bid, err, domain.BidActionWithdraw)
}

// Act dispatches action to its endpoint
func (s *BidService) Act(ctx context.Context, token, id string, action domain.BidAction, in ActionInput) (*domain.Bid, error) {
	switch action {
	case domain.BidActionCounter:
		return s.Counter(ctx, token, id, in.Amount, in.Message)
	case domain.BidActionAccept:
		return s.Accept(ctx, token, id)
	case domain.BidActionReject:
		return s.Reject(ctx, token, id)
	case domain.BidActionWithdraw:
		return s.Withdraw(ctx, token, id)
	}
	return nil, &Error{Kind: domain.ErrInvalidInput, Message: "Unknown bid action", Err: fmt.Errorf("bid action %q", action)}
}

func (s *BidService) result(ctx context.Context, bid *domain.Bid, err error, action domain.BidAction) (*domain.Bid, error) {
	if err != nil {
		logger.FromContext(ctx).Warn("bid action failed", "action", action, "error", err)
		return nil, fromUpstream(err, ConflictBidMessage)
	}
	logger.FromContext(ctx).Info("bid action applied", "action", action, "bid_id", bid.ID, "status", bid.Status)
	return bid, nil
}
