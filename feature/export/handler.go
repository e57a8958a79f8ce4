package export

import (
	"schema-sync/core/logger"
	"schema-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for exports.
type Handler struct {
	service *Service
	store   *Store
}

// NewHandler creates a new HTTP handler. store may be nil when no object
// storage is configured.
func NewHandler(service *Service, store *Store) *Handler {
	return &Handler{service: service, store: store}
}

// Request is the body of POST /export.
type Request struct {
	Project      string   `json:"project"`
	IssueTypeIDs []string `json:"issueTypeIds"`
	Save         bool     `json:"save"`
}

// Response is the body returned by POST /export.
type Response struct {
	Configuration *reconcile.ExportedConfiguration `json:"configuration"`
	ObjectKey     string                           `json:"objectKey,omitempty"`
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Post("/", h.HandleExport)
	group.Get("/:project", h.HandleList)
}

// HandleExport snapshots a project and optionally saves it to storage.
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Project == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "project is required"})
	}
	if req.Save && h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage is not configured"})
	}

	cfg, err := h.service.Export(c.UserContext(), req.Project, req.IssueTypeIDs)
	if err != nil {
		l.Error("Export failed", zap.String("project", req.Project), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	resp := Response{Configuration: cfg}
	if req.Save {
		key, err := h.store.Save(c.UserContext(), cfg)
		if err != nil {
			l.Error("Saving export failed", zap.String("project", req.Project), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		resp.ObjectKey = key
	}
	return c.JSON(resp)
}

// HandleList returns the saved snapshot keys of a project.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage is not configured"})
	}
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.store.List(c.UserContext(), c.Params("project"))
	if err != nil {
		l.Error("Listing exports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(fiber.Map{"snapshots": keys})
}
