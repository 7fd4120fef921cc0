package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"dealspot/internal/middleware"
	"dealspot/internal/repositories"
	"dealspot/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DealHandler handles HTTP requests for merchant-scoped deals.
type DealHandler struct {
	service  *services.DealService
	validate *validator.Validate
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(service *services.DealService) *DealHandler {
	return &DealHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the deal routes with the Fiber app. The router is
// expected to carry the AuthRequired and MerchantRequired middleware.
func (h *DealHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleListDeals)
	router.Get("/:id", h.HandleGetDeal)
	router.Post("/", h.HandleCreateDeal)
	router.Patch("/:id", h.HandleUpdateDeal)
	router.Delete("/:id", h.HandleDeleteDeal)
}

// DealCreateRequest represents the request body for creating a deal.
type DealCreateRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Active      *bool  `json:"active"`
}

// DealUpdateRequest represents the request body for a partial update.
// Pointer fields distinguish "absent" from "set to zero value".
type DealUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Active      *bool   `json:"active"`
}

func merchantID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.MerchantIDKey).(string)
	return id
}

// parsePositiveInt parses a pagination parameter. Non-integer, zero, and
// negative values are all rejected rather than silently defaulted.
func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("invalid pagination")
	}
	return n, nil
}

// parseActiveFilter interprets the active query parameter. Unrecognized
// values are ignored, not an error.
func parseActiveFilter(raw string) *bool {
	switch strings.ToLower(raw) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// HandleListDeals lists the caller's deals with search and pagination.
func (h *DealHandler) HandleListDeals(c *fiber.Ctx) error {
	page, err := parsePositiveInt(c.Query("page"), 1)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid pagination",
		})
	}
	perPage, err := parsePositiveInt(c.Query("per_page"), services.DefaultPerPage)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid pagination",
		})
	}

	params := services.ListParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("q"),
		Active:  parseActiveFilter(c.Query("active")),
	}

	result, err := h.service.List(merchantID(c), params)
	if err != nil {
		log.Printf("Error listing deals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve deals",
		})
	}
	return c.JSON(result)
}

// HandleGetDeal retrieves a single deal. A deal owned by another merchant is
// reported as missing.
func (h *DealHandler) HandleGetDeal(c *fiber.Ctx) error {
	deal, err := h.service.Get(merchantID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrDealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "not found",
			})
		}
		log.Printf("Error getting deal %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve deal",
		})
	}
	return c.JSON(deal)
}

// HandleCreateDeal creates a deal owned by the caller's merchant.
func (h *DealHandler) HandleCreateDeal(c *fiber.Ctx) error {
	var req DealCreateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create deal request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	deal, err := h.service.Create(merchantID(c), req.Title, req.Description, req.Active)
	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "title is required",
			})
		}
		log.Printf("Error creating deal: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create deal",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

// HandleUpdateDeal applies a partial update to the caller's deal.
func (h *DealHandler) HandleUpdateDeal(c *fiber.Ctx) error {
	var req DealUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update deal request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	update := services.DealUpdate{
		Title:       req.Title,
		Description: req.Description,
		Active:      req.Active,
	}
	deal, err := h.service.Update(merchantID(c), c.Params("id"), update)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDealNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "not found",
			})
		case errors.Is(err, services.ErrTitleRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "title is required",
			})
		}
		log.Printf("Error updating deal %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update deal",
		})
	}
	return c.JSON(deal)
}

// HandleDeleteDeal physically deletes the caller's deal.
func (h *DealHandler) HandleDeleteDeal(c *fiber.Ctx) error {
	if err := h.service.Delete(merchantID(c), c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrDealNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "not found",
			})
		}
		log.Printf("Error deleting deal %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete deal",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
