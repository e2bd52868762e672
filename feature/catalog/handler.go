package catalog

import (
	"errors"

	"dsikea/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the furniture catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/furnitures")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/", h.HandleCreate)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// statusFor maps catalog errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidFurniture),
		errors.Is(err, ErrInvalidQuery),
		errors.Is(err, ErrQuantityReadOnly),
		errors.Is(err, ErrDuplicateTuple):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Catalog request failed", zap.Error(err))
		// Do not leak storage internals on unexpected faults.
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleList returns catalog entries matching the query filters.
// @Summary List furniture
// @Description List catalog entries, optionally filtered by name, description, material or color.
// @Tags furniture
// @Produce json
// @Param name query string false "Furniture name"
// @Param material query string false "Material"
// @Param color query string false "Color"
// @Success 200 {array} models.Furniture
// @Failure 400 {object} map[string]string
// @Router /furnitures [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	filters := map[string]string{}
	for key, values := range c.Queries() {
		filters[key] = values
	}

	items, err := h.service.List(c.Context(), filters)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// HandleGet returns a single catalog entry.
// @Summary Get furniture
// @Tags furniture
// @Produce json
// @Param id path string true "Furniture ID"
// @Success 200 {object} models.Furniture
// @Failure 404 {object} map[string]string
// @Router /furnitures/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	item, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(item)
}

// HandleCreate adds a new catalog entry with zero stock.
// @Summary Create furniture
// @Description Create a catalog entry. Quantity is rejected, stock moves only through transactions.
// @Tags furniture
// @Accept json
// @Produce json
// @Param furniture body CreateRequest true "Furniture"
// @Success 201 {object} models.Furniture
// @Failure 400 {object} map[string]string
// @Router /furnitures [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	item, err := h.service.Create(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdate patches a catalog entry.
// @Summary Update furniture
// @Tags furniture
// @Accept json
// @Produce json
// @Param id path string true "Furniture ID"
// @Param patch body UpdateRequest true "Fields to update"
// @Success 200 {object} models.Furniture
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /furnitures/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	item, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(item)
}

// HandleDelete removes a catalog entry.
// @Summary Delete furniture
// @Tags furniture
// @Produce json
// @Param id path string true "Furniture ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /furnitures/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "furniture deleted"})
}
