package handlers

import (
	"io"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/response"
)

// BrokerageHandler handles brokerage onboarding uploads
type BrokerageHandler struct {
	brokerages *services.BrokerageService
}

// NewBrokerageHandler creates a new brokerage handler
func NewBrokerageHandler(brokerages *services.BrokerageService) *BrokerageHandler {
	return &BrokerageHandler{brokerages: brokerages}
}

// CreateBrokerage handles brokerage registration
// @Summary Register brokerage
// @Tags Brokerage
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param name formData string true "Brokerage name"
// @Param license_number formData string true "Trade licence number"
// @Param email formData string true "Contact email"
// @Param phone formData string true "UAE mobile number"
// @Param address formData string false "Address"
// @Param documents formData file true "Licence documents (PDF, JPG, PNG)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /brokerage/brokerages [post]
func (h *BrokerageHandler) CreateBrokerage(c *fiber.Ctx) error {
	var req services.BrokerageInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid form data")
	}
	docs, err := documents(c)
	if err != nil {
		return response.BadRequest(c, "Could not read the uploaded files")
	}
	token, _ := viewer(c)

	br, err := h.brokerages.CreateBrokerage(c.UserContext(), token, req, docs)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Brokerage registered successfully", br)
}

// CreateManager handles adding a manager to a brokerage
// @Summary Create manager
// @Tags Brokerage
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param brokerage_id formData string true "Brokerage ID"
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param email formData string true "Email"
// @Param phone formData string true "UAE mobile number"
// @Param license_number formData string false "Broker licence number"
// @Param documents formData file false "Supporting documents"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /brokerage/managers [post]
func (h *BrokerageHandler) CreateManager(c *fiber.Ctx) error {
	return h.createMember(c, domain.RoleManager)
}

// CreateAgent handles adding an agent to a brokerage
// @Summary Create agent
// @Tags Brokerage
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param brokerage_id formData string true "Brokerage ID"
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param email formData string true "Email"
// @Param phone formData string true "UAE mobile number"
// @Param license_number formData string false "Broker licence number"
// @Param documents formData file false "Supporting documents"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /brokerage/agents [post]
func (h *BrokerageHandler) CreateAgent(c *fiber.Ctx) error {
	return h.createMember(c, domain.RoleAgent)
}

func (h *BrokerageHandler) createMember(c *fiber.Ctx, role domain.Role) error {
	var req services.MemberInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid form data")
	}
	docs, err := documents(c)
	if err != nil {
		return response.BadRequest(c, "Could not read the uploaded files")
	}
	token, _ := viewer(c)

	var member *domain.Member
	if role == domain.RoleManager {
		member, err = h.brokerages.CreateManager(c.UserContext(), token, req, docs)
	} else {
		member, err = h.brokerages.CreateAgent(c.UserContext(), token, req, docs)
	}
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, role.Label()+" created successfully", member)
}

// documents reads every uploaded file. Oversized files are cut one byte past the limit
// so the size check still rejects them.
func documents(c *fiber.Ctx) ([]domain.Document, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var docs []domain.Document
	for _, field := range fields {
		for _, fh := range form.File[field] {
			doc, err := readDocument(field, fh)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func readDocument(field string, fh *multipart.FileHeader) (domain.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Document{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, services.MaxDocumentSize+1))
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		Field:       field,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
