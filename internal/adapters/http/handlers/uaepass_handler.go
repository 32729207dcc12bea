package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/response"
)

// UAEPassHandler handles UAE Pass linking and e-signature endpoints
type UAEPassHandler struct {
	uaepass *services.UAEPassService
}

// NewUAEPassHandler creates a new UAE Pass handler
func NewUAEPassHandler(uaepass *services.UAEPassService) *UAEPassHandler {
	return &UAEPassHandler{uaepass: uaepass}
}

// SignatureRequest names the document to sign
type SignatureRequest struct {
	DocumentID string `json:"document_id" validate:"required"`
}

// Authorize returns the UAE Pass login URL
// @Summary UAE Pass authorize URL
// @Tags UAE Pass
// @Produce json
// @Security CookieAuth
// @Param state query string false "Caller state"
// @Success 200 {object} response.Response
// @Router /uaepass/authorize [get]
func (h *UAEPassHandler) Authorize(c *fiber.Ctx) error {
	token, _ := viewer(c)

	u, state, err := h.uaepass.Authorize(c.UserContext(), token, c.Query("state"))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Authorization URL created", fiber.Map{
		"url":   u,
		"state": state,
	})
}

// UserInfo exchanges the authorization code and links the account
// @Summary UAE Pass user info
// @Tags UAE Pass
// @Produce json
// @Security CookieAuth
// @Param code query string true "Authorization code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /uaepass/userinfo [get]
func (h *UAEPassHandler) UserInfo(c *fiber.Ctx) error {
	token, _ := viewer(c)

	info, err := h.uaepass.UserInfo(c.UserContext(), token, c.Query("code"))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "UAE Pass account linked", info)
}

// StartSignature begins an e-signature
// @Summary Start e-signature
// @Tags UAE Pass
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body SignatureRequest true "Document"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /uaepass/signature [post]
func (h *UAEPassHandler) StartSignature(c *fiber.Ctx) error {
	var req SignatureRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	token, _ := viewer(c)

	sess, err := h.uaepass.StartSignature(c.UserContext(), token, req.DocumentID)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Signature started", sess)
}

// SignatureStatus polls an e-signature
// @Summary E-signature status
// @Tags UAE Pass
// @Produce json
// @Security CookieAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /uaepass/signature/{id} [get]
func (h *UAEPassHandler) SignatureStatus(c *fiber.Ctx) error {
	token, _ := viewer(c)

	sess, err := h.uaepass.SignatureStatus(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Signature status retrieved", sess)
}
