package domain

import (
	"fmt"
	"time"
)

// TourStatus is the state of a scheduled viewing
type TourStatus string

const (
	TourScheduled   TourStatus = "SCHEDULED"
	TourCancelled   TourStatus = "CANCELLED"
	TourRescheduled TourStatus = "RESCHEDULED"
	TourCompleted   TourStatus = "COMPLETED"
	TourNoShow      TourStatus = "NO_SHOW"
)

// TourStatuses lists every tour status in display order
var TourStatuses = []TourStatus{TourScheduled, TourCancelled, TourRescheduled, TourCompleted, TourNoShow}

// TourAction is a user action on a tour
type TourAction string

const (
	TourActionCancel     TourAction = "cancel"
	TourActionReschedule TourAction = "reschedule"
	TourActionComplete   TourAction = "complete"
	TourActionNoShow     TourAction = "no-show"
)

var tourActionOrder = []TourAction{TourActionReschedule, TourActionCancel, TourActionComplete, TourActionNoShow}

var tourTransitions = map[TourStatus]map[TourAction]TourStatus{
	TourScheduled: {
		TourActionCancel:     TourCancelled,
		TourActionReschedule: TourRescheduled,
		TourActionComplete:   TourCompleted,
		TourActionNoShow:     TourNoShow,
	},
}

// ParseTourStatus accepts the marketplace spelling of a status
func ParseTourStatus(s string) (TourStatus, error) {
	for _, st := range TourStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: tour status %q", ErrUnknownStatus, s)
}

// ParseTourAction validates an action name taken from a URL
func ParseTourAction(s string) (TourAction, error) {
	for _, a := range tourActionOrder {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: tour action %q", ErrInvalidInput, s)
}

// IsTerminal reports whether the portal issues no further transition for the tour
func (s TourStatus) IsTerminal() bool {
	return s != TourScheduled
}

func (s TourStatus) Next(action TourAction) (TourStatus, bool) {
	next, ok := tourTransitions[s][action]
	return next, ok
}

func (s TourStatus) CanTransition(action TourAction) bool {
	_, ok := s.Next(action)
	return ok
}

// Actions lists the enabled actions in a stable order
func (s TourStatus) Actions() []TourAction {
	actions := make([]TourAction, 0, len(tourActionOrder))
	for _, a := range tourActionOrder {
		if s.CanTransition(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Tour is a scheduled property viewing
type Tour struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"property_id"`
	TenantID   string     `json:"tenant_id"`
	AgentID    string     `json:"agent_id,omitempty"`
	Date       string     `json:"date"`
	TimeSlot   string     `json:"time_slot"`
	Virtual    bool       `json:"virtual"`
	Status     TourStatus `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TourDateLayout is the calendar date format the marketplace uses
const TourDateLayout = "2006-01-02"

// TimeSlots are the bookable viewing windows
var TimeSlots = []string{"09:00-10:00", "10:00-11:00", "11:00-12:00", "13:00-14:00", "14:00-15:00", "15:00-16:00", "16:00-17:00", "17:00-18:00"}

// ValidTimeSlot reports whether slot is bookable
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ActionsFor narrows tour actions by who is looking: tenants reschedule or cancel,
// the hosting side also marks the outcome.
func (t *Tour) ActionsFor(viewerID string) []TourAction {
	all := t.Status.Actions()
	if viewerID == "" || viewerID != t.TenantID {
		return all
	}
	out := make([]TourAction, 0, len(all))
	for _, a := range all {
		if a == TourActionReschedule || a == TourActionCancel {
			out = append(out, a)
		}
	}
	return out
}
