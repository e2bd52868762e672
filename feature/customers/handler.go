package customers

import (
	"errors"
	"regexp"

	"dsikea/core/logger"
	"dsikea/feature/customers/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// dniShape distinguishes a DNI path parameter from an internal id.
var dniShape = regexp.MustCompile(`^\d{8}[A-Z]$`)

// Handler handles HTTP requests for the customer registry.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the customer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/customers")
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
	case errors.Is(err, ErrInvalidCustomer),
		errors.Is(err, ErrInvalidUpdate),
		errors.Is(err, ErrDuplicateDNI):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Customer request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// HandleList returns all registered customers.
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} models.Customer
// @Router /customers [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	customers, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(customers)
}

// HandleGet returns a customer by DNI or internal id.
// @Summary Get customer
// @Tags customers
// @Produce json
// @Param identifier path string true "DNI or internal id"
// @Success 200 {object} models.Customer
// @Failure 404 {object} map[string]string
// @Router /customers/{identifier} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var (
		customer *models.Customer
		err      error
	)
	if dniShape.MatchString(identifier) {
		customer, err = h.service.GetByDNI(c.Context(), identifier)
	} else {
		customer, err = h.service.GetByID(c.Context(), identifier)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(customer)
}

// HandleCreate registers a new customer.
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body models.Customer true "Customer"
// @Success 201 {object} models.Customer
// @Failure 400 {object} map[string]string
// @Router /customers [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	created, err := h.service.Create(c.Context(), customer)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdate patches a customer by internal id.
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param patch body UpdateRequest true "Fields to update"
// @Success 200 {object} models.Customer
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	customer, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(customer)
}

// HandleDelete removes a customer by DNI or internal id.
// @Summary Delete customer
// @Tags customers
// @Produce json
// @Param identifier path string true "DNI or internal id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /customers/{identifier} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var err error
	if dniShape.MatchString(identifier) {
		err = h.service.DeleteByDNI(c.Context(), identifier)
	} else {
		err = h.service.DeleteByID(c.Context(), identifier)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "customer deleted"})
}
