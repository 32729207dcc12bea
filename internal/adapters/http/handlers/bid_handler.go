package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/response"
	"rentwise-portal/internal/pkg/validate"
)

// BidHandler handles bid negotiation endpoints
type BidHandler struct {
	bids *services.BidService
}

// NewBidHandler creates a new bid handler
func NewBidHandler(bids *services.BidService) *BidHandler {
	return &BidHandler{bids: bids}
}

// BidActionRequest is the body of a bid action. Status is the bid's status as the
// page last saw it; when set, actions the status does not allow are refused locally.
type BidActionRequest struct {
	services.ActionInput
	Status string `json:"status"`
}

// ValidateAmountRequest is an advisory bid range check
type ValidateAmountRequest struct {
	Amount      float64 `json:"amount"`
	AskingPrice float64 `json:"asking_price" validate:"required,price"`
}

// ListBids handles listing the user's bids
// @Summary List bids
// @Description Bids the signed-in user placed or received, with display and actions
// @Tags Bids
// @Produce json
// @Security CookieAuth
// @Param search query string false "Search term"
// @Param status query string false "Bid status"
// @Param sort query string false "created_at, amount or status"
// @Param order query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /bids [get]
func (h *BidHandler) ListBids(c *fiber.Ctx) error {
	token, userID := viewer(c)

	bids, err := h.bids.List(c.UserContext(), token, userID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Bids retrieved successfully", services.QueryBids(bids, userID, listQuery(c)))
}

// GetBid handles getting one bid
// @Summary Get bid
// @Tags Bids
// @Produce json
// @Security CookieAuth
// @Param id path string true "Bid ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bids/{id} [get]
func (h *BidHandler) GetBid(c *fiber.Ctx) error {
	token, userID := viewer(c)

	bid, err := h.bids.Get(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Bid retrieved successfully", services.NewBidView(*bid, userID))
}

// CreateBid handles placing a bid
// @Summary Place bid
// @Tags Bids
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body services.CreateBidInput true "Bid"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /bids [post]
func (h *BidHandler) CreateBid(c *fiber.Ctx) error {
	var req services.CreateBidInput
	if err := bind(c, &req); err != nil {
		return err
	}
	token, userID := viewer(c)

	bid, err := h.bids.Create(c.UserContext(), token, req)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Bid placed successfully", services.NewBidView(*bid, userID))
}

// Act handles counter, accept, reject and withdraw
// @Summary Bid action
// @Description One request per action. A 409 means the other party changed the bid first.
// @Tags Bids
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Bid ID"
// @Param action path string true "counter, accept, reject or withdraw"
// @Param request body BidActionRequest false "Counter amount and message"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bids/{id}/{action} [post]
func (h *BidHandler) Act(c *fiber.Ctx) error {
	action, err := domain.ParseBidAction(c.Params("action"))
	if err != nil {
		return response.BadRequest(c, "Unknown bid action")
	}

	var req BidActionRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	if req.Status != "" {
		known, err := domain.ParseBidStatus(strings.ToUpper(req.Status))
		if err != nil {
			return response.BadRequest(c, "Unknown bid status")
		}
		if !known.CanTransition(action) {
			return fail(c, &services.Error{
				Kind:    domain.ErrActionNotAllowed,
				Message: fmt.Sprintf("This bid is %s and cannot be changed", strings.ToLower(known.Display().Label)),
			})
		}
	}

	token, userID := viewer(c)
	bid, err := h.bids.Act(c.UserContext(), token, c.Params("id"), action, req.ActionInput)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Bid updated successfully", services.NewBidView(*bid, userID))
}

// ValidateAmount handles the advisory range check
// @Summary Validate bid amount
// @Description Checks an amount against the asking price without contacting the marketplace
// @Tags Bids
// @Accept json
// @Produce json
// @Param request body ValidateAmountRequest true "Amount and asking price"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /bids/validate-amount [post]
func (h *BidHandler) ValidateAmount(c *fiber.Ctx) error {
	var req ValidateAmountRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result := h.bids.CheckAmount(req.Amount, req.AskingPrice)
	return response.Success(c, "Amount checked", fiber.Map{
		"valid":     result.Valid,
		"reason":    result.Reason,
		"formatted": validate.FormatAED(req.Amount),
	})
}
