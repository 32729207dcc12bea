package services

import (
	"context"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
)

// The marketplace client is split into one port per area so each service and its tests
// only see the calls they make. *marketapi.Client satisfies all of them.

// BidAPI is the bid negotiation surface of the marketplace
type BidAPI interface {
	ListBids(ctx context.Context, token, userID string) ([]domain.Bid, error)
	GetBid(ctx context.Context, token, id string) (*domain.Bid, error)
	CreateBid(ctx context.Context, token string, req marketapi.CreateBidRequest) (*domain.Bid, error)
	CounterBid(ctx context.Context, token, id string, req marketapi.CounterBidRequest) (*domain.Bid, error)
	AcceptBid(ctx context.Context, token, id string) (*domain.Bid, error)
	RejectBid(ctx context.Context, token, id string) (*domain.Bid, error)
	WithdrawBid(ctx context.Context, token, id string) (*domain.Bid, error)
}

// TourAPI books and updates viewings
type TourAPI interface {
	ListBookings(ctx context.Context, token string) ([]domain.Tour, error)
	GetBooking(ctx context.Context, token, id string) (*domain.Tour, error)
	CreateBooking(ctx context.Context, token string, req marketapi.BookingRequest) (*domain.Tour, error)
	UpdateBooking(ctx context.Context, token, id string, upd marketapi.BookingUpdate) (*domain.Tour, error)
	CancelBooking(ctx context.Context, token, id string) (*domain.Tour, error)
}

// ApartmentAPI reads and edits listings
type ApartmentAPI interface {
	ListApartments(ctx context.Context, token string, filter domain.ApartmentFilter) ([]domain.Apartment, error)
	GetApartment(ctx context.Context, token, id string) (*domain.Apartment, error)
	CreateApartment(ctx context.Context, token string, in marketapi.ApartmentInput) (*domain.Apartment, error)
	UpdateApartment(ctx context.Context, token, id string, in marketapi.ApartmentInput) (*domain.Apartment, error)
	DeleteApartment(ctx context.Context, token, id string) error
}

// UserAPI covers the signed-in user's account
type UserAPI interface {
	Me(ctx context.Context, token string) (*domain.User, error)
	UpdateMe(ctx context.Context, token string, upd marketapi.ProfileUpdate) (*domain.User, error)
	RoleStatus(ctx context.Context, token string) (*domain.RoleStatus, error)
	UAEPassStatus(ctx context.Context, token string) (*domain.UAEPassStatus, error)
	AssignRole(ctx context.Context, token string, role domain.Role) error
}

// AgentAPI backs the agent dashboard
type AgentAPI interface {
	AgentBids(ctx context.Context, token string) ([]domain.AgentBidRow, error)
	AgentClients(ctx context.Context, token string) ([]domain.ClientRow, error)
	AgentPerformance(ctx context.Context, token string) (*domain.PerformanceSummary, error)
}

// BrokerageAPI onboards brokerages and their staff
type BrokerageAPI interface {
	CreateBrokerage(ctx context.Context, token string, req marketapi.BrokerageRequest) (*domain.Brokerage, error)
	CreateManager(ctx context.Context, token string, req marketapi.MemberRequest) (*domain.Member, error)
	CreateAgent(ctx context.Context, token string, req marketapi.MemberRequest) (*domain.Member, error)
}

// UAEPassAPI is the UAE Pass federation and e-signature surface
type UAEPassAPI interface {
	AuthorizeURL(ctx context.Context, token, state string) (string, error)
	UserInfo(ctx context.Context, token, code string) (*marketapi.UAEPassUser, error)
	SignatureInit(ctx context.Context, token, documentID string) (*marketapi.SignatureSession, error)
	SignatureStatus(ctx context.Context, token, transactionID string) (*marketapi.SignatureSession, error)
}

// MarketAPI is everything the portal calls upstream
type MarketAPI interface {
	BidAPI
	TourAPI
	ApartmentAPI
	UserAPI
	AgentAPI
	BrokerageAPI
	UAEPassAPI
}

var _ MarketAPI = (*marketapi.Client)(nil)
