package domain

import (
	"fmt"
	"time"
)

// BidStatus is the state of a bid thread
type BidStatus string

const (
	BidOpen         BidStatus = "OPEN"
	BidCounterOffer BidStatus = "COUNTER_OFFER"
	BidAccepted     BidStatus = "ACCEPTED"
	BidRejected     BidStatus = "REJECTED"
	BidWithdrawn    BidStatus = "WITHDRAWN"
)

// BidStatuses lists every bid status in display order
var BidStatuses = []BidStatus{BidOpen, BidCounterOffer, BidAccepted, BidRejected, BidWithdrawn}

// BidAction is a user action on a bid thread
type BidAction string

const (
	BidActionCounter  BidAction = "counter"
	BidActionAccept   BidAction = "accept"
	BidActionReject   BidAction = "reject"
	BidActionWithdraw BidAction = "withdraw"
)

// bidTransitions mirrors the marketplace negotiation graph. The API is the authority;
// this table only decides which actions a page offers.
var bidTransitions = map[BidStatus]map[BidAction]BidStatus{
	BidOpen: {
		BidActionCounter:  BidCounterOffer,
		BidActionAccept:   BidAccepted,
		BidActionReject:   BidRejected,
		BidActionWithdraw: BidWithdrawn,
	},
	BidCounterOffer: {
		BidActionCounter:  BidCounterOffer,
		BidActionAccept:   BidAccepted,
		BidActionReject:   BidRejected,
		BidActionWithdraw: BidWithdrawn,
	},
}

var bidActionOrder = []BidAction{BidActionCounter, BidActionAccept, BidActionReject, BidActionWithdraw}

// ParseBidStatus accepts the marketplace spelling of a status
func ParseBidStatus(s string) (BidStatus, error) {
	for _, st := range BidStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: bid status %q", ErrUnknownStatus, s)
}

// ParseBidAction validates an action name taken from a URL
func ParseBidAction(s string) (BidAction, error) {
	for _, a := range bidActionOrder {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: bid action %q", ErrInvalidInput, s)
}

// IsTerminal reports whether no further action can be taken
func (s BidStatus) IsTerminal() bool {
	return s == BidAccepted || s == BidRejected || s == BidWithdrawn
}

// Next returns the status an action leads to, and whether the action is enabled
func (s BidStatus) Next(action BidAction) (BidStatus, bool) {
	next, ok := bidTransitions[s][action]
	return next, ok
}

// CanTransition reports whether action is enabled from s
func (s BidStatus) CanTransition(action BidAction) bool {
	_, ok := s.Next(action)
	return ok
}

// Actions lists the enabled actions in a stable order; empty for terminal statuses
func (s BidStatus) Actions() []BidAction {
	actions := make([]BidAction, 0, len(bidActionOrder))
	for _, a := range bidActionOrder {
		if s.CanTransition(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// PaymentFrequency is how often rent is paid
type PaymentFrequency string

const (
	PayMonthly   PaymentFrequency = "MONTHLY"
	PayQuarterly PaymentFrequency = "QUARTERLY"
	PayYearly    PaymentFrequency = "YEARLY"
)

// Valid reports whether f is a known frequency
func (f PaymentFrequency) Valid() bool {
	return f == PayMonthly || f == PayQuarterly || f == PayYearly
}

// Installments are the cheque counts the marketplace accepts
var Installments = []int{1, 2, 4, 6, 12}

// ValidInstallments reports whether n is one of Installments
func ValidInstallments(n int) bool {
	for _, v := range Installments {
		if v == n {
			return true
		}
	}
	return false
}

// Bid is one tenant's offer on one listing
type Bid struct {
	ID          string           `json:"id"`
	ListingID   string           `json:"listing_id"`
	TenantID    string           `json:"tenant_id"`
	LandlordID  string           `json:"landlord_id"`
	Amount      float64          `json:"amount"`
	Frequency   PaymentFrequency `json:"payment_frequency"`
	Installment int              `json:"installments"`
	Status      BidStatus        `json:"status"`
	Message     string           `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

// ActionsFor narrows the status actions to what the viewer should see.
// Only the tenant who placed the bid may withdraw it, and the tenant accepts or rejects
// only a counter offer made to them.
func (b *Bid) ActionsFor(viewerID string) []BidAction {
	all := b.Status.Actions()
	out := make([]BidAction, 0, len(all))
	originator := viewerID != "" && viewerID == b.TenantID
	for _, a := range all {
		switch a {
		case BidActionWithdraw:
			if !originator {
				continue
			}
		case BidActionAccept, BidActionReject:
			if originator && b.Status != BidCounterOffer {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
