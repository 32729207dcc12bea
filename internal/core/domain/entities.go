package domain

import "time"

// Apartment is a rental listing as the marketplace API describes it
type Apartment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Community   string    `json:"community,omitempty"`
	City        string    `json:"city,omitempty"`
	Type        string    `json:"type,omitempty"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	AreaSqft    float64   `json:"area_sqft,omitempty"`
	Price       float64   `json:"price"`
	Furnished   bool      `json:"furnished"`
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Amenities   []string  `json:"amenities,omitempty"`
	LandlordID  string    `json:"landlord_id,omitempty"`
	AgentID     string    `json:"agent_id,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApartmentFilter is the listing search sent to the marketplace API
type ApartmentFilter struct {
	Query      string
	City       string
	Community  string
	Type       string
	MinPrice   float64
	MaxPrice   float64
	Bedrooms   *int
	Furnished  *bool
	LandlordID string
}

// User is the authenticated principal
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      *Role     `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// RoleStatus is the onboarding state returned after sign-in
type RoleStatus struct {
	RoleAssigned bool  `json:"role_assigned"`
	Role         *Role `json:"role,omitempty"`
}

// UAEPassStatus tells whether the account is linked to UAE Pass
type UAEPassStatus struct {
	Linked    bool       `json:"linked"`
	Verified  bool       `json:"verified"`
	LinkedAt  *time.Time `json:"linked_at,omitempty"`
	UAEPassID string     `json:"uaepass_id,omitempty"`
}

// Brokerage is an organisation under which managers and agents operate
type Brokerage struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Member is a manager or agent created under a brokerage
type Member struct {
	ID          string    `json:"id"`
	BrokerageID string    `json:"brokerage_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Document is an uploaded onboarding file
type Document struct {
	Field       string
	FileName    string
	ContentType string
	Content     []byte
}

// AgentBidRow is one bid on the agent dashboard. Fields the backend may omit are pointers.
type AgentBidRow struct {
	BidID        string     `json:"bid_id"`
	PropertyName string     `json:"property_name"`
	TenantName   string     `json:"tenant_name"`
	Amount       float64    `json:"amount"`
	Status       BidStatus  `json:"status"`
	AskingPrice  *float64   `json:"asking_price,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}

// ClientRow is one client on the agent dashboard
type ClientRow struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	ActiveBids   int        `json:"active_bids"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// PerformanceSummary is the agent's KPI block
type PerformanceSummary struct {
	TotalListings  int      `json:"total_listings"`
	ActiveBids     int      `json:"active_bids"`
	ClosedDeals    int      `json:"closed_deals"`
	ToursBooked    int      `json:"tours_booked"`
	ConversionRate *float64 `json:"conversion_rate,omitempty"`
	Revenue        *float64 `json:"revenue,omitempty"`
}
