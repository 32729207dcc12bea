package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/logger"
)

// TourService books viewings and moves them through their statuses
type TourService struct {
	api TourAPI
	now func() time.Time
}

func NewTourService(api TourAPI) *TourService {
	return &TourService{api: api, now: time.Now}
}

// BookTourInput is a viewing request
type BookTourInput struct {
	PropertyID string `json:"property_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	TimeSlot   string `json:"time_slot" validate:"required"`
	Virtual    bool   `json:"virtual"`
	Notes      string `json:"notes" validate:"max=500"`
}

// TourActionInput carries the new slot for a reschedule
type TourActionInput struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

func (s *TourService) List(ctx context.Context, token string) ([]domain.Tour, error) {
	tours, err := s.api.ListBookings(ctx, token)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	return tours, nil
}

func (s *TourService) Get(ctx context.Context, token, id string) (*domain.Tour, error) {
	tour, err := s.api.GetBooking(ctx, token, id)
	if err != nil {
		return nil, fromUpstream(err, "")
	}
	return tour, nil
}

func (s *TourService) Book(ctx context.Context, token string, in BookTourInput) (*domain.Tour, error) {
	if err := s.checkSlot(in.Date, in.TimeSlot); err != nil {
		return nil, err
	}
	tour, err := s.api.CreateBooking(ctx, token, marketapi.BookingRequest{
		PropertyID: in.PropertyID,
		Date:       in.Date,
		TimeSlot:   in.TimeSlot,
		Virtual:    in.Virtual,
		Notes:      in.Notes,
	})
	if err != nil {
		return nil, fromUpstream(err, "That time slot is no longer available")
	}
	logger.FromContext(ctx).Info("tour booked", "tour_id", tour.ID, "property_id", in.PropertyID)
	return tour, nil
}

// Act applies action to the tour. When known is set and the graph does not allow the
// action from it, nothing is sent.
func (s *TourService) Act(ctx context.Context, token, id string, known domain.TourStatus, action domain.TourAction, in TourActionInput) (*domain.Tour, error) {
	if known != "" && !known.CanTransition(action) {
		return nil, &Error{
			Kind:    domain.ErrActionNotAllowed,
			Message: fmt.Sprintf("This tour is %s and cannot be changed", strings.ToLower(known.Display().Label)),
		}
	}

	var (
		tour *domain.Tour
		err  error
	)
	switch action {
	case domain.TourActionCancel:
		tour, err = s.api.CancelBooking(ctx, token, id)
	case domain.TourActionReschedule:
		if err := s.checkSlot(in.Date, in.TimeSlot); err != nil {
			return nil, err
		}
		tour, err = s.api.UpdateBooking(ctx, token, id, marketapi.BookingUpdate{
			Date:     in.Date,
			TimeSlot: in.TimeSlot,
			Status:   domain.TourRescheduled,
		})
	case domain.TourActionComplete:
		tour, err = s.api.UpdateBooking(ctx, token, id, marketapi.BookingUpdate{Status: domain.TourCompleted})
	case domain.TourActionNoShow:
		tour, err = s.api.UpdateBooking(ctx, token, id, marketapi.BookingUpdate{Status: domain.TourNoShow})
	default:
		return nil, &Error{Kind: domain.ErrInvalidInput, Message: "Unknown tour action", Err: fmt.Errorf("tour action %q", action)}
	}
	if err != nil {
		return nil, fromUpstream(err, "The tour was changed by someone else; refresh and try again")
	}
	logger.FromContext(ctx).Info("tour updated", "tour_id", id, "action", action, "status", tour.Status)
	return tour, nil
}

// checkSlot refuses dates in the past and unknown time slots
func (s *TourService) checkSlot(date, slot string) error {
	day, err := time.Parse(domain.TourDateLayout, date)
	if err != nil {
		return newError(domain.ErrInvalidInput, "Choose a valid date")
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return newError(domain.ErrInvalidInput, "Tour date cannot be in the past")
	}
	if !domain.ValidTimeSlot(slot) {
		return newError(domain.ErrInvalidInput, "Choose one of the available time slots")
	}
	return nil
}
