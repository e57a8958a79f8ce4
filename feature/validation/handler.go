package validation

import (
	"schema-sync/core/logger"
	"schema-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for validation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Request is the body of POST /validation.
type Request struct {
	Configuration *reconcile.ExportedConfiguration `json:"configuration"`
	TargetProject string                           `json:"targetProject"`
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/validation", h.HandleValidate)
}

// HandleValidate validates a configuration against a target project.
// Incompatible results are still answered with 200; callers read Compatible.
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Configuration == nil || req.TargetProject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "configuration and targetProject are required"})
	}
	if err := req.Configuration.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Validate(c.UserContext(), req.Configuration, req.TargetProject)
	if err != nil {
		l.Error("Validation failed", zap.String("target", req.TargetProject), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
