package integrity

import (
	"teamboard/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/seed", h.HandleSeedCheck)
	group.Get("/view", h.HandleViewCheck)
}

// HandleIntegrityCheck runs every check and combines the results.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	if r, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = r
	}

	if r, err := h.service.CheckSeed(ctx); err != nil {
		report["seed"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["seed"] = r
	}

	if r, err := h.service.CheckView(ctx); err != nil {
		report["view"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["view"] = r
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the teams table columns.
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if report.Status != "ok" {
		l.Warn("Missing columns detected", zap.Strings("missing", report.MissingColumns))
	}
	return c.JSON(report)
}

// HandleSeedCheck parses the seed document without importing it.
func (h *Handler) HandleSeedCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSeed(c.Context())
	if err != nil {
		l.Error("Seed check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleViewCheck compares the live view with a fresh evaluation.
func (h *Handler) HandleViewCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckView(c.Context())
	if err != nil {
		l.Error("View check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.InSync {
		l.Warn("Live view out of sync",
			zap.Uint64("generation", report.Generation),
			zap.Uint64("store_generation", report.StoreGeneration))
	}
	return c.JSON(report)
}
