package providers

import (
	"errors"
	"regexp"

	"dsikea/core/logger"
	"dsikea/feature/providers/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// cifShape distinguishes a CIF path parameter from an internal id.
var cifShape = regexp.MustCompile(`^[A-Z]\d{7}[0-9A-J]$`)

// Handler handles HTTP requests for the provider registry.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the provider routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/providers")
	group.Get("/", h.HandleList)
	group.Get("/:identifier", h.HandleGet)
	group.Post("/", h.HandleCreate)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:identifier", h.HandleDelete)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidProvider),
		errors.Is(err, ErrInvalidUpdate),
		errors.Is(err, ErrDuplicateCIF):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Provider request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// HandleList returns all registered providers.
// @Summary List providers
// @Tags providers
// @Produce json
// @Success 200 {array} models.Provider
// @Router /providers [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	providers, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(providers)
}

// HandleGet returns a provider by CIF or internal id.
// @Summary Get provider
// @Tags providers
// @Produce json
// @Param identifier path string true "CIF or internal id"
// @Success 200 {object} models.Provider
// @Failure 404 {object} map[string]string
// @Router /providers/{identifier} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var (
		provider *models.Provider
		err      error
	)
	if cifShape.MatchString(identifier) {
		provider, err = h.service.GetByCIF(c.Context(), identifier)
	} else {
		provider, err = h.service.GetByID(c.Context(), identifier)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(provider)
}

// HandleCreate registers a new provider.
// @Summary Create provider
// @Tags providers
// @Accept json
// @Produce json
// @Param provider body models.Provider true "Provider"
// @Success 201 {object} models.Provider
// @Failure 400 {object} map[string]string
// @Router /providers [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var provider models.Provider
	if err := c.BodyParser(&provider); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	created, err := h.service.Create(c.Context(), provider)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdate patches a provider by internal id.
// @Summary Update provider
// @Tags providers
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Param patch body UpdateRequest true "Fields to update"
// @Success 200 {object} models.Provider
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /providers/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	provider, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(provider)
}

// HandleDelete removes a provider by CIF or internal id.
// @Summary Delete provider
// @Tags providers
// @Produce json
// @Param identifier path string true "CIF or internal id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /providers/{identifier} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var err error
	if cifShape.MatchString(identifier) {
		err = h.service.DeleteByCIF(c.Context(), identifier)
	} else {
		err = h.service.DeleteByID(c.Context(), identifier)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "provider deleted"})
}
