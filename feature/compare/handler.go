package compare

import (
	"schema-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Output formats accepted by GET /compare.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/compare", h.HandleCompare)
}

// HandleCompare compares the projects named by the left and right query
// parameters.
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	left, right := c.Query("left"), c.Query("right")
	if left == "" || right == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "left and right are required"})
	}
	format := c.Query("format", FormatJSON)
	if format != FormatJSON && format != FormatMarkdown {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be json or markdown"})
	}

	result, err := h.service.Compare(c.UserContext(), left, right)
	if err != nil {
		l.Error("Compare failed", zap.String("left", left), zap.String("right", right), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	if format == FormatMarkdown {
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		return c.SendString(RenderMarkdown(result))
	}
	return c.JSON(fiber.Map{
		"result":  result,
		"summary": result.Summary(),
	})
}
