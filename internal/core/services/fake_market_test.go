package services

import (
	"context"
	"net/http"
	"sync"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
)

// fakeMarket implements MarketAPI. Unset hooks return zero values; every call is recorded.
type fakeMarket struct {
	mu    sync.Mutex
	calls []string

	listBids   func(userID string) ([]domain.Bid, error)
	createBid  func(req marketapi.CreateBidRequest) (*domain.Bid, error)
	bidAction  func(op, id string) (*domain.Bid, error)
	counterBid func(id string, req marketapi.CounterBidRequest) (*domain.Bid, error)
	listTours  func() ([]domain.Tour, error)
	createTour func(req marketapi.BookingRequest) (*domain.Tour, error)
	updateTour func(id string, upd marketapi.BookingUpdate) (*domain.Tour, error)
	cancelTour func(id string) (*domain.Tour, error)
	listApts   func(filter domain.ApartmentFilter) ([]domain.Apartment, error)
	getApt     func(id string) (*domain.Apartment, error)
	me         func(token string) (*domain.User, error)
	roleStatus func() (*domain.RoleStatus, error)
	assignRole func(role domain.Role) error
	agentBids  func() ([]domain.AgentBidRow, error)
	brokerage  func(req marketapi.BrokerageRequest) (*domain.Brokerage, error)
	member     func(op string, req marketapi.MemberRequest) (*domain.Member, error)
	assigned   []domain.Role
	lastUpdate *marketapi.BookingUpdate
}

var _ MarketAPI = (*fakeMarket)(nil)

func (f *fakeMarket) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeMarket) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func apiError(op string, status int, message string) error {
	return &marketapi.APIError{Op: op, StatusCode: status, Message: message}
}

func unauthorized(op string) error { return apiError(op, http.StatusUnauthorized, "Unauthorized") }

// bids

func (f *fakeMarket) ListBids(_ context.Context, _, userID string) ([]domain.Bid, error) {
	f.record("ListBids")
	if f.listBids != nil {
		return f.listBids(userID)
	}
	return nil, nil
}

func (f *fakeMarket) GetBid(_ context.Context, _, id string) (*domain.Bid, error) {
	f.record("GetBid")
	if f.bidAction != nil {
		return f.bidAction("GetBid", id)
	}
	return &domain.Bid{ID: id}, nil
}

func (f *fakeMarket) CreateBid(_ context.Context, _ string, req marketapi.CreateBidRequest) (*domain.Bid, error) {
	f.record("CreateBid")
	if f.createBid != nil {
		return f.createBid(req)
	}
	return &domain.Bid{ID: "new", ListingID: req.ListingID, Amount: req.Amount, Status: domain.BidOpen}, nil
}

func (f *fakeMarket) CounterBid(_ context.Context, _, id string, req marketapi.CounterBidRequest) (*domain.Bid, error) {
	f.record("CounterBid")
	if f.counterBid != nil {
		return f.counterBid(id, req)
	}
	return &domain.Bid{ID: id, Amount: req.Amount, Status: domain.BidCounterOffer}, nil
}

func (f *fakeMarket) AcceptBid(_ context.Context, _, id string) (*domain.Bid, error) {
	return f.terminal("AcceptBid", id, domain.BidAccepted)
}

func (f *fakeMarket) RejectBid(_ context.Context, _, id string) (*domain.Bid, error) {
	return f.terminal("RejectBid", id, domain.BidRejected)
}

func (f *fakeMarket) WithdrawBid(_ context.Context, _, id string) (*domain.Bid, error) {
	return f.terminal("WithdrawBid", id, domain.BidWithdrawn)
}

func (f *fakeMarket) terminal(op, id string, status domain.BidStatus) (*domain.Bid, error) {
	f.record(op)
	if f.bidAction != nil {
		return f.bidAction(op, id)
	}
	return &domain.Bid{ID: id, Status: status}, nil
}

// tours

func (f *fakeMarket) ListBookings(context.Context, string) ([]domain.Tour, error) {
	f.record("ListBookings")
	if f.listTours != nil {
		return f.listTours()
	}
	return nil, nil
}

func (f *fakeMarket) GetBooking(_ context.Context, _, id string) (*domain.Tour, error) {
	f.record("GetBooking")
	return &domain.Tour{ID: id, Status: domain.TourScheduled}, nil
}

func (f *fakeMarket) CreateBooking(_ context.Context, _ string, req marketapi.BookingRequest) (*domain.Tour, error) {
	f.record("CreateBooking")
	if f.createTour != nil {
		return f.createTour(req)
	}
	return &domain.Tour{ID: "t-new", PropertyID: req.PropertyID, Date: req.Date, TimeSlot: req.TimeSlot, Status: domain.TourScheduled}, nil
}

func (f *fakeMarket) UpdateBooking(_ context.Context, _, id string, upd marketapi.BookingUpdate) (*domain.Tour, error) {
	f.record("UpdateBooking")
	f.mu.Lock()
	f.lastUpdate = &upd
	f.mu.Unlock()
	if f.updateTour != nil {
		return f.updateTour(id, upd)
	}
	return &domain.Tour{ID: id, Date: upd.Date, TimeSlot: upd.TimeSlot, Status: upd.Status}, nil
}

func (f *fakeMarket) CancelBooking(_ context.Context, _, id string) (*domain.Tour, error) {
	f.record("CancelBooking")
	if f.cancelTour != nil {
		return f.cancelTour(id)
	}
	return &domain.Tour{ID: id, Status: domain.TourCancelled}, nil
}

// apartments

func (f *fakeMarket) ListApartments(_ context.Context, _ string, filter domain.ApartmentFilter) ([]domain.Apartment, error) {
	f.record("ListApartments")
	if f.listApts != nil {
		return f.listApts(filter)
	}
	return nil, nil
}

func (f *fakeMarket) GetApartment(_ context.Context, _, id string) (*domain.Apartment, error) {
	f.record("GetApartment")
	if f.getApt != nil {
		return f.getApt(id)
	}
	return &domain.Apartment{ID: id}, nil
}

func (f *fakeMarket) CreateApartment(_ context.Context, _ string, in marketapi.ApartmentInput) (*domain.Apartment, error) {
	f.record("CreateApartment")
	return &domain.Apartment{ID: "a-new", Title: in.Title, Price: in.Price}, nil
}

func (f *fakeMarket) UpdateApartment(_ context.Context, _, id string, in marketapi.ApartmentInput) (*domain.Apartment, error) {
	f.record("UpdateApartment")
	return &domain.Apartment{ID: id, Title: in.Title, Price: in.Price}, nil
}

func (f *fakeMarket) DeleteApartment(context.Context, string, string) error {
	f.record("DeleteApartment")
	return nil
}

// users

func (f *fakeMarket) Me(_ context.Context, token string) (*domain.User, error) {
	f.record("Me")
	if f.me != nil {
		return f.me(token)
	}
	return &domain.User{ID: "u1", Email: "u1@example.com"}, nil
}

func (f *fakeMarket) UpdateMe(_ context.Context, _ string, upd marketapi.ProfileUpdate) (*domain.User, error) {
	f.record("UpdateMe")
	u := &domain.User{ID: "u1"}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	return u, nil
}

func (f *fakeMarket) RoleStatus(context.Context, string) (*domain.RoleStatus, error) {
	f.record("RoleStatus")
	if f.roleStatus != nil {
		return f.roleStatus()
	}
	return &domain.RoleStatus{}, nil
}

func (f *fakeMarket) UAEPassStatus(context.Context, string) (*domain.UAEPassStatus, error) {
	f.record("UAEPassStatus")
	return &domain.UAEPassStatus{Linked: true}, nil
}

func (f *fakeMarket) AssignRole(_ context.Context, _ string, role domain.Role) error {
	f.record("AssignRole")
	f.mu.Lock()
	f.assigned = append(f.assigned, role)
	f.mu.Unlock()
	if f.assignRole != nil {
		return f.assignRole(role)
	}
	return nil
}

// agents

func (f *fakeMarket) AgentBids(context.Context, string) ([]domain.AgentBidRow, error) {
	f.record("AgentBids")
	if f.agentBids != nil {
		return f.agentBids()
	}
	return nil, nil
}

func (f *fakeMarket) AgentClients(context.Context, string) ([]domain.ClientRow, error) {
	f.record("AgentClients")
	return []domain.ClientRow{{ID: "c1", Name: "Sara"}}, nil
}

func (f *fakeMarket) AgentPerformance(context.Context, string) (*domain.PerformanceSummary, error) {
	f.record("AgentPerformance")
	return &domain.PerformanceSummary{ClosedDeals: 4}, nil
}

// brokerage

func (f *fakeMarket) CreateBrokerage(_ context.Context, _ string, req marketapi.BrokerageRequest) (*domain.Brokerage, error) {
	f.record("CreateBrokerage")
	if f.brokerage != nil {
		return f.brokerage(req)
	}
	return &domain.Brokerage{ID: "br1", Name: req.Name}, nil
}

func (f *fakeMarket) CreateManager(_ context.Context, _ string, req marketapi.MemberRequest) (*domain.Member, error) {
	return f.createMember("CreateManager", req, domain.RoleManager)
}

func (f *fakeMarket) CreateAgent(_ context.Context, _ string, req marketapi.MemberRequest) (*domain.Member, error) {
	return f.createMember("CreateAgent", req, domain.RoleAgent)
}

func (f *fakeMarket) createMember(op string, req marketapi.MemberRequest, role domain.Role) (*domain.Member, error) {
	f.record(op)
	if f.member != nil {
		return f.member(op, req)
	}
	return &domain.Member{ID: "m1", BrokerageID: req.BrokerageID, Email: req.Email, Role: role}, nil
}

// uaepass

func (f *fakeMarket) AuthorizeURL(_ context.Context, _, state string) (string, error) {
	f.record("AuthorizeURL")
	return "https://id.uaepass.ae/authorize?state=" + state, nil
}

func (f *fakeMarket) UserInfo(_ context.Context, _, code string) (*marketapi.UAEPassUser, error) {
	f.record("UserInfo")
	return &marketapi.UAEPassUser{UAEPassID: "uae-" + code}, nil
}

func (f *fakeMarket) SignatureInit(_ context.Context, _, documentID string) (*marketapi.SignatureSession, error) {
	f.record("SignatureInit")
	return &marketapi.SignatureSession{TransactionID: "tx-" + documentID, Status: "PENDING"}, nil
}

func (f *fakeMarket) SignatureStatus(_ context.Context, _, transactionID string) (*marketapi.SignatureSession, error) {
	f.record("SignatureStatus")
	return &marketapi.SignatureSession{TransactionID: transactionID, Status: "SIGNED"}, nil
}
