package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/core/services"
	"rentwise-portal/internal/pkg/pagination"
	"rentwise-portal/internal/pkg/response"
	"rentwise-portal/internal/pkg/validate"
)

// ApartmentHandler handles listing endpoints
type ApartmentHandler struct {
	apartments *services.ApartmentService
}

// NewApartmentHandler creates a new apartment handler
func NewApartmentHandler(apartments *services.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{apartments: apartments}
}

// apartmentFilter reads the search form from the query string.
// mine=true scopes the search to the signed-in landlord.
func apartmentFilter(c *fiber.Ctx) domain.ApartmentFilter {
	f := domain.ApartmentFilter{
		Query:      strings.TrimSpace(c.Query("search")),
		City:       c.Query("city"),
		Community:  c.Query("community"),
		Type:       c.Query("type"),
		LandlordID: c.Query("landlord_id"),
	}
	if v, ok := validate.ParsePrice(c.Query("min_price")); ok {
		f.MinPrice = v
	}
	if v, ok := validate.ParsePrice(c.Query("max_price")); ok {
		f.MaxPrice = v
	}
	if n, err := strconv.Atoi(c.Query("bedrooms")); err == nil && n >= 0 {
		f.Bedrooms = &n
	}
	if b, err := strconv.ParseBool(c.Query("furnished")); err == nil {
		f.Furnished = &b
	}
	if c.QueryBool("mine") {
		if _, userID := viewer(c); userID != "" {
			f.LandlordID = userID
		}
	}
	return f
}

// ListApartments handles listing search
// @Summary Search apartments
// @Tags Apartments
// @Produce json
// @Param search query string false "Search term"
// @Param city query string false "City"
// @Param community query string false "Community"
// @Param type query string false "Apartment type"
// @Param min_price query number false "Minimum yearly rent"
// @Param max_price query number false "Maximum yearly rent"
// @Param bedrooms query int false "Bedrooms"
// @Param furnished query bool false "Furnished only"
// @Param mine query bool false "Only my listings"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /apartments [get]
func (h *ApartmentHandler) ListApartments(c *fiber.Ctx) error {
	token, _ := viewer(c)

	items, err := h.apartments.Search(c.UserContext(), token, apartmentFilter(c))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Apartments retrieved successfully", pagination.Slice(items, pagination.GetParams(c)))
}

// Map handles the clustered map view
// @Summary Apartment map clusters
// @Description Groups matching listings by geohash cell
// @Tags Apartments
// @Produce json
// @Param precision query int false "Geohash precision (1-9)" default(6)
// @Success 200 {object} response.Response
// @Router /apartments/map [get]
func (h *ApartmentHandler) Map(c *fiber.Ctx) error {
	token, _ := viewer(c)
	precision := c.QueryInt("precision", services.DefaultClusterPrecision)

	clusters, err := h.apartments.Map(c.UserContext(), token, apartmentFilter(c), precision)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Clusters retrieved successfully", fiber.Map{
		"clusters": clusters,
	})
}

// GetApartment handles listing detail
// @Summary Get apartment
// @Tags Apartments
// @Produce json
// @Param id path string true "Apartment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /apartments/{id} [get]
func (h *ApartmentHandler) GetApartment(c *fiber.Ctx) error {
	token, _ := viewer(c)

	apt, err := h.apartments.Get(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Apartment retrieved successfully", apt)
}

// CreateApartment handles creating a listing
// @Summary Create apartment
// @Tags Apartments
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body services.ApartmentInput true "Listing"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /apartments [post]
func (h *ApartmentHandler) CreateApartment(c *fiber.Ctx) error {
	var req services.ApartmentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	token, _ := viewer(c)

	apt, err := h.apartments.Create(c.UserContext(), token, req)
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, "Apartment created successfully", apt)
}

// UpdateApartment handles editing a listing
// @Summary Update apartment
// @Tags Apartments
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Apartment ID"
// @Param request body services.ApartmentInput true "Listing"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /apartments/{id} [put]
func (h *ApartmentHandler) UpdateApartment(c *fiber.Ctx) error {
	var req services.ApartmentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	token, _ := viewer(c)

	apt, err := h.apartments.Update(c.UserContext(), token, c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Apartment updated successfully", apt)
}

// DeleteApartment handles removing a listing
// @Summary Delete apartment
// @Tags Apartments
// @Produce json
// @Security CookieAuth
// @Param id path string true "Apartment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /apartments/{id} [delete]
func (h *ApartmentHandler) DeleteApartment(c *fiber.Ctx) error {
	token, _ := viewer(c)

	if err := h.apartments.Delete(c.UserContext(), token, c.Params("id")); err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Apartment deleted successfully", nil)
}
