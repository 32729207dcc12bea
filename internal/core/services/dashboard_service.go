package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/pagination"
)

// DashboardService builds the role dashboards. Independent upstream reads run
// concurrently and the dashboard is built only when every one of them succeeded.
type DashboardService struct {
	bids       BidAPI
	tours      TourAPI
	apartments ApartmentAPI
	agents     AgentAPI
	now        func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(bids BidAPI, tours TourAPI, apartments ApartmentAPI, agents AgentAPI) *DashboardService {
	return &DashboardService{bids: bids, tours: tours, apartments: apartments, agents: agents, now: time.Now}
}

// ListQuery is the search/filter/sort/page applied to the main table of a dashboard
type ListQuery struct {
	Search string
	Status string
	Sort   string
	Desc   bool
	Page   *pagination.Params
}

func (q ListQuery) params() *pagination.Params {
	if q.Page == nil {
		return pagination.NewParams(1, pagination.DefaultLimit)
	}
	return q.Page
}

// BidView is a bid with its display and the actions the viewer may take
type BidView struct {
	domain.Bid
	Display domain.StatusDisplay `json:"display"`
	Actions []domain.BidAction   `json:"actions"`
}

// TourView is a tour with its display and the viewer's actions
type TourView struct {
	domain.Tour
	Display domain.StatusDisplay `json:"display"`
	Actions []domain.TourAction  `json:"actions"`
}

func NewBidView(b domain.Bid, viewerID string) BidView {
	return BidView{Bid: b, Display: b.Status.Display(), Actions: b.ActionsFor(viewerID)}
}

func NewTourView(t domain.Tour, viewerID string) TourView {
	return TourView{Tour: t, Display: t.Status.Display(), Actions: t.ActionsFor(viewerID)}
}

// BidCounts is a per-status breakdown
type BidCounts struct {
	Total    int                      `json:"total"`
	Active   int                      `json:"active"`
	ByStatus map[domain.BidStatus]int `json:"by_status"`
}

// TourCounts is a per-status breakdown
type TourCounts struct {
	Total    int                       `json:"total"`
	Upcoming int                       `json:"upcoming"`
	ByStatus map[domain.TourStatus]int `json:"by_status"`
}

// TenantDashboard is what a tenant sees
type TenantDashboard struct {
	Role          domain.Role              `json:"role"`
	BidCounts     BidCounts                `json:"bid_counts"`
	TourCounts    TourCounts               `json:"tour_counts"`
	Bids          pagination.Page[BidView] `json:"bids"`
	UpcomingTours []TourView               `json:"upcoming_tours"`
}

// LandlordDashboard is what a landlord sees
type LandlordDashboard struct {
	Role          domain.Role              `json:"role"`
	ListingCount  int                      `json:"listing_count"`
	Listings      []domain.Apartment       `json:"listings"`
	BidCounts     BidCounts                `json:"bid_counts"`
	TourCounts    TourCounts               `json:"tour_counts"`
	Bids          pagination.Page[BidView] `json:"bids"`
	UpcomingTours []TourView               `json:"upcoming_tours"`
}

// AgentDashboard is what an agent sees
type AgentDashboard struct {
	Role        domain.Role                         `json:"role"`
	Performance *domain.PerformanceSummary          `json:"performance"`
	Bids        pagination.Page[domain.AgentBidRow] `json:"bids"`
	Clients     []domain.ClientRow                  `json:"clients"`
}

// OverviewDashboard serves managers, owners and admins
type OverviewDashboard struct {
	Role         domain.Role              `json:"role"`
	ListingCount int                      `json:"listing_count"`
	BidCounts    BidCounts                `json:"bid_counts"`
	TourCounts   TourCounts               `json:"tour_counts"`
	Bids         pagination.Page[BidView] `json:"bids"`
}

// ForRole builds the dashboard of the given role
func (s *DashboardService) ForRole(ctx context.Context, role domain.Role, token, userID string, q ListQuery) (interface{}, error) {
	switch role {
	case domain.RoleTenant:
		return s.Tenant(ctx, token, userID, q)
	case domain.RoleLandlord:
		return s.Landlord(ctx, token, userID, q)
	case domain.RoleAgent:
		return s.Agent(ctx, token, q)
	case domain.RoleManager, domain.RoleOwner, domain.RoleAdmin:
		return s.Overview(ctx, role, token, userID, q)
	}
	return nil, &Error{Kind: domain.ErrForbidden, Message: "No dashboard for this account", Err: domain.ErrUnknownRole}
}

func (s *DashboardService) Tenant(ctx context.Context, token, userID string, q ListQuery) (*TenantDashboard, error) {
	var (
		bids  []domain.Bid
		tours []domain.Tour
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bids, err = s.bids.ListBids(gctx, token, userID)
		return err
	})
	g.Go(func() (err error) {
		tours, err = s.tours.ListBookings(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fromUpstream(err, "")
	}

	return &TenantDashboard{
		Role:          domain.RoleTenant,
		BidCounts:     CountBids(bids),
		TourCounts:    CountTours(tours),
		Bids:          QueryBids(bids, userID, q),
		UpcomingTours: s.upcoming(tours, userID),
	}, nil
}

func (s *DashboardService) Landlord(ctx context.Context, token, userID string, q ListQuery) (*LandlordDashboard, error) {
	var (
		listings []domain.Apartment
		bids     []domain.Bid
		tours    []domain.Tour
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		listings, err = s.apartments.ListApartments(gctx, token, domain.ApartmentFilter{LandlordID: userID})
		return err
	})
	g.Go(func() (err error) {
		bids, err = s.bids.ListBids(gctx, token, userID)
		return err
	})
	g.Go(func() (err error) {
		tours, err = s.tours.ListBookings(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fromUpstream(err, "")
	}

	return &LandlordDashboard{
		Role:          domain.RoleLandlord,
		ListingCount:  len(listings),
		Listings:      listings,
		BidCounts:     CountBids(bids),
		TourCounts:    CountTours(tours),
		Bids:          QueryBids(bids, userID, q),
		UpcomingTours: s.upcoming(tours, userID),
	}, nil
}

func (s *DashboardService) Agent(ctx context.Context, token string, q ListQuery) (*AgentDashboard, error) {
	var (
		rows    []domain.AgentBidRow
		clients []domain.ClientRow
		perf    *domain.PerformanceSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = s.agents.AgentBids(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		clients, err = s.agents.AgentClients(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		perf, err = s.agents.AgentPerformance(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fromUpstream(err, "")
	}

	return &AgentDashboard{
		Role:        domain.RoleAgent,
		Performance: perf,
		Bids:        QueryAgentBids(rows, q),
		Clients:     clients,
	}, nil
}

func (s *DashboardService) Overview(ctx context.Context, role domain.Role, token, viewerID string, q ListQuery) (*OverviewDashboard, error) {
	var (
		listings []domain.Apartment
		bids     []domain.Bid
		tours    []domain.Tour
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		listings, err = s.apartments.ListApartments(gctx, token, domain.ApartmentFilter{})
		return err
	})
	g.Go(func() (err error) {
		bids, err = s.bids.ListBids(gctx, token, "")
		return err
	})
	g.Go(func() (err error) {
		tours, err = s.tours.ListBookings(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fromUpstream(err, "")
	}

	return &OverviewDashboard{
		Role:         role,
		ListingCount: len(listings),
		BidCounts:    CountBids(bids),
		TourCounts:   CountTours(tours),
		Bids:         QueryBids(bids, viewerID, q),
	}, nil
}

// upcoming keeps scheduled tours from today on, soonest first
func (s *DashboardService) upcoming(tours []domain.Tour, viewerID string) []TourView {
	today := s.now().UTC().Format(domain.TourDateLayout)
	kept := pagination.Filter(tours, func(t domain.Tour) bool {
		return (t.Status == domain.TourScheduled || t.Status == domain.TourRescheduled) && t.Date >= today
	})
	kept = pagination.SortBy(kept, func(a, b domain.Tour) bool {
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.TimeSlot < b.TimeSlot
	}, false)

	out := make([]TourView, len(kept))
	for i, t := range kept {
		out[i] = NewTourView(t, viewerID)
	}
	return out
}

// CountBids breaks bids down by status. Active means not terminal.
func CountBids(bids []domain.Bid) BidCounts {
	c := BidCounts{Total: len(bids), ByStatus: make(map[domain.BidStatus]int, len(domain.BidStatuses))}
	for _, st := range domain.BidStatuses {
		c.ByStatus[st] = 0
	}
	for _, b := range bids {
		c.ByStatus[b.Status]++
		if !b.Status.IsTerminal() {
			c.Active++
		}
	}
	return c
}

// CountTours breaks tours down by status
func CountTours(tours []domain.Tour) TourCounts {
	c := TourCounts{Total: len(tours), ByStatus: make(map[domain.TourStatus]int, len(domain.TourStatuses))}
	for _, st := range domain.TourStatuses {
		c.ByStatus[st] = 0
	}
	for _, t := range tours {
		c.ByStatus[t.Status]++
		if t.Status == domain.TourScheduled || t.Status == domain.TourRescheduled {
			c.Upcoming++
		}
	}
	return c
}

// QueryBids applies search, status filter, sort and paging to fetched bids
func QueryBids(bids []domain.Bid, viewerID string, q ListQuery) pagination.Page[BidView] {
	rows := pagination.Search(bids, q.Search, func(b domain.Bid) []string {
		return []string{b.ID, b.ListingID, b.Message, string(b.Status)}
	})
	if status, err := domain.ParseBidStatus(strings.ToUpper(q.Status)); err == nil {
		rows = pagination.Filter(rows, func(b domain.Bid) bool { return b.Status == status })
	}

	switch q.Sort {
	case "amount":
		rows = pagination.SortBy(rows, func(a, b domain.Bid) bool { return a.Amount < b.Amount }, q.Desc)
	case "status":
		rows = pagination.SortBy(rows, func(a, b domain.Bid) bool { return a.Status < b.Status }, q.Desc)
	default:
		// newest first unless asked otherwise
		desc := q.Desc || q.Sort == ""
		rows = pagination.SortBy(rows, func(a, b domain.Bid) bool { return a.CreatedAt.Before(b.CreatedAt) }, desc)
	}

	page := pagination.Slice(rows, q.params())
	views := make([]BidView, len(page.Items))
	for i, b := range page.Items {
		views[i] = NewBidView(b, viewerID)
	}
	return pagination.Page[BidView]{Items: views, Meta: page.Meta}
}

// QueryAgentBids is QueryBids for agent dashboard rows
func QueryAgentBids(rows []domain.AgentBidRow, q ListQuery) pagination.Page[domain.AgentBidRow] {
	rows = pagination.Search(rows, q.Search, func(r domain.AgentBidRow) []string {
		return []string{r.PropertyName, r.TenantName, string(r.Status)}
	})
	if status, err := domain.ParseBidStatus(strings.ToUpper(q.Status)); err == nil {
		rows = pagination.Filter(rows, func(r domain.AgentBidRow) bool { return r.Status == status })
	}
	switch q.Sort {
	case "amount":
		rows = pagination.SortBy(rows, func(a, b domain.AgentBidRow) bool { return a.Amount < b.Amount }, q.Desc)
	case "property":
		rows = pagination.SortBy(rows, func(a, b domain.AgentBidRow) bool { return a.PropertyName < b.PropertyName }, q.Desc)
	case "submitted_at", "":
		// rows without a date go last in either direction
		dated := pagination.Filter(rows, func(r domain.AgentBidRow) bool { return r.SubmittedAt != nil })
		undated := pagination.Filter(rows, func(r domain.AgentBidRow) bool { return r.SubmittedAt == nil })
		desc := q.Desc || q.Sort == ""
		dated = pagination.SortBy(dated, func(a, b domain.AgentBidRow) bool {
			return a.SubmittedAt.Before(*b.SubmittedAt)
		}, desc)
		rows = append(dated, undated...)
	}
	return pagination.Slice(rows, q.params())
}
