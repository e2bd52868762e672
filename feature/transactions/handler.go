package transactions

import (
	"errors"
	"time"

	"dsikea/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for transactions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the transaction routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/transactions")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/", h.HandleCreate)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/", h.HandleDeleteAll)
	group.Delete("/:id", h.HandleDelete)
}

// statusFor maps transaction errors to HTTP status codes. Anything outside
// the taxonomy is an internal fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrProviderNotFound),
		errors.Is(err, ErrFurnitureNameNotFound),
		errors.Is(err, ErrFurnitureMaterialNotFound),
		errors.Is(err, ErrFurnitureColorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrMissingCounterparty),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInvalidLine),
		errors.Is(err, ErrTypeImmutable),
		errors.Is(err, ErrPriceImmutable),
		errors.Is(err, ErrInvalidUpdate),
		errors.Is(err, ErrConfirmationRequired):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Transaction request failed", zap.Error(err))
		// Storage faults are reported without leaking internals.
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// parseDate accepts a plain date or a full RFC 3339 timestamp. It reports
// whether the value was date-only so the caller can widen an end date to
// the close of that day.
func parseDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	return t, false, err
}

// HandleList returns transactions, optionally filtered by counterparty or
// inclusive date range.
// @Summary List transactions
// @Description List all transactions, or filter by customer dni, provider cif, or the inclusive date range [idate, fdate].
// @Tags transactions
// @Produce json
// @Param dni query string false "Customer DNI"
// @Param cif query string false "Provider CIF"
// @Param idate query string false "Range start (YYYY-MM-DD)"
// @Param fdate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	q := ListQuery{
		DNI: c.Query("dni"),
		CIF: c.Query("cif"),
	}

	if raw := c.Query("idate"); raw != "" {
		start, _, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed idate"})
		}
		q.Start = &start
	}
	if raw := c.Query("fdate"); raw != "" {
		end, dateOnly, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed fdate"})
		}
		// The range is inclusive, a date-only end means end of that day.
		// An explicit timestamp is taken as the exact end instant.
		if dateOnly {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		q.End = &end
	}
	if (q.Start == nil) != (q.End == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "idate and fdate must be provided together"})
	}

	txs, err := h.service.List(c.Context(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(txs)
}

// HandleGet returns a single transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	tx, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tx)
}

// HandleCreate commits a new transaction.
// @Summary Create transaction
// @Description Commit a sale (dni + lookup lines) or purchase (cif + full lines). Any line failure aborts the whole request.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body CreateRequest true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	tx, err := h.service.Create(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// HandleUpdate applies a partial patch to a transaction.
// @Summary Update transaction
// @Description Patch date, counterparty or furniture lines. Type and price are rejected outright.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param patch body object true "Patch"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	tx, err := h.service.Update(c.Context(), c.Params("id"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tx)
}

// HandleDelete reverses and removes a transaction.
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "transaction deleted"})
}

// HandleDeleteAll reverses and removes every transaction. Requires
// ?confirm=true.
// @Summary Delete all transactions
// @Tags transactions
// @Produce json
// @Param confirm query bool true "Must be true"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Router /transactions [delete]
func (h *Handler) HandleDeleteAll(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteAll(c.Context(), c.QueryBool("confirm"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
