package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/response"
)

// TourHandler handles property viewing endpoints
type TourHandler struct {
	tours *services.TourService
}

// NewTourHandler creates a new tour handler
func NewTourHandler(tours *services.TourService) *TourHandler {
	return &TourHandler{tours: tours}
}

// TourActionRequest carries the new slot for a reschedule and the tour status the
// page last saw
type TourActionRequest struct {
	services.TourActionInput
	Status string `json:"status"`
}

// ListTours handles listing the user's tours
// @Summary List tours
// @Tags Tours
// @Produce json
// @Security CookieAuth
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /tours [get]
func (h *TourHandler) ListTours(c *fiber.Ctx) error {
	token, userID := viewer(c)

	tours, err := h.tours.List(c.UserContext(), token)
	if err != nil {
		return fail(c, err)
	}

	views := make([]services.TourView, len(tours))
	for i, t := range tours {
		views[i] = services.NewTourView(t, userID)
	}
	return response.Success(c, "Tours retrieved successfully", fiber.Map{
		"tours":      views,
		"counts":     services.CountTours(tours),
		"time_slots": domain.TimeSlots,
	})
}

// BookTour handles booking a viewing
// @Summary Book tour
// @Tags Tours
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body services.BookTourInput true "Viewing request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /tours [post]
func (h *TourHandler) BookTour(c *fiber.Ctx) error {
	var req services.BookTourInput
	if err := bind(c, &req); err != nil {
		return err
	}
	token, userID := viewer(c)

	tour, err := h.tours.Book(c.UserContext(), token, req)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Tour booked successfully", services.NewTourView(*tour, userID))
}

// Act handles cancel, reschedule, complete and no-show
// @Summary Tour action
// @Tags Tours
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Tour ID"
// @Param action path string true "cancel, reschedule, complete or no-show"
// @Param request body TourActionRequest false "New date and slot for reschedule"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tours/{id}/{action} [post]
func (h *TourHandler) Act(c *fiber.Ctx) error {
	action, err := domain.ParseTourAction(c.Params("action"))
	if err != nil {
		return response.BadRequest(c, "Unknown tour action")
	}

	var req TourActionRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	var known domain.TourStatus
	if req.Status != "" {
		if known, err = domain.ParseTourStatus(strings.ToUpper(req.Status)); err != nil {
			return response.BadRequest(c, "Unknown tour status")
		}
	}

	token, userID := viewer(c)
	tour, err := h.tours.Act(c.UserContext(), token, c.Params("id"), known, action, req.TourActionInput)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Tour updated successfully", services.NewTourView(*tour, userID))
}
