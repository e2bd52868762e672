package audit

import (
	"dsikea/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Get("/transactions", h.HandleRun)
}

// HandleRun runs the consistency audit and returns the report.
// @Summary Run consistency audit
// @Description Re-checks stock non-negativity, stored totals against line sums, and counterparty/type linkage.
// @Tags audit
// @Produce json
// @Success 200 {object} Report
// @Failure 500 {object} map[string]string
// @Router /audit/transactions [get]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	report, err := h.service.Run(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Audit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(report)
}
