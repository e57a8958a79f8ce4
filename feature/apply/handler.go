package apply

import (
	"errors"

	"schema-sync/core/logger"
	"schema-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for apply runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Body is the body of POST /apply.
type Body struct {
	Configuration *reconcile.ExportedConfiguration `json:"configuration"`
	TargetProject string                           `json:"targetProject"`
	Diff          *reconcile.ConfigurationDiff     `json:"diff"`
	Options       reconcile.ApplyOptions           `json:"options"`
}

// RegisterRoutes registers the apply routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/apply")
	group.Post("/", h.HandleApply)
	group.Get("/history", h.HandleHistory)
}

// HandleApply reconciles a configuration into a target project.
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body Body
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.Configuration == nil || body.TargetProject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "configuration and targetProject are required"})
	}
	if err := body.Configuration.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, validated, err := h.service.Apply(c.UserContext(), Request{
		Source:    body.Configuration,
		TargetKey: body.TargetProject,
		Diff:      body.Diff,
		Options:   body.Options,
	})
	if errors.Is(err, ErrIncompatible) {
		l.Warn("Apply blocked by validation", zap.String("target", body.TargetProject))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      err.Error(),
			"validation": validated,
		})
	}
	if err != nil {
		l.Error("Apply failed", zap.String("target", body.TargetProject), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleHistory lists recorded apply runs.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	if !h.service.HistoryEnabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "apply history is not enabled"})
	}
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.History(c.UserContext(), c.Query("project"), c.QueryInt("limit", DefaultHistoryLimit))
	if err != nil {
		l.Error("Listing apply history failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if runs == nil {
		runs = []ApplyRun{}
	}
	return c.JSON(fiber.Map{"runs": runs})
}
