package teams

import (
	"errors"

	"teamboard/core/liveview"
	"teamboard/core/logger"
	"teamboard/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for teams.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the team routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/teams")
	group.Get("/sections", h.HandleSections)
	group.Get("/sections/:section/rows/:row", h.HandleObjectAt)
	group.Post("/sections/:section/rows/:row/wins", h.HandleIncrementWinsAt)
	group.Get("/snapshot", h.HandleSnapshot)
	group.Get("/operations", h.HandleOperations)
	group.Post("/", h.HandleAddTeam)
	group.Post("/:id/wins", h.HandleIncrementWins)
}

// HandleSections returns the section labels and row counts.
func (h *Handler) HandleSections(c *fiber.Ctx) error {
	sections, err := h.service.Sections()
	if err != nil {
		return h.fail(c, "Failed to read sections", err)
	}
	return c.JSON(fiber.Map{"sections": sections})
}

// HandleObjectAt returns the record at a section/row position.
func (h *Handler) HandleObjectAt(c *fiber.Ctx) error {
	section, row, ok := position(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "section and row must be integers",
		})
	}

	rec, err := h.service.ObjectAt(section, row)
	if err != nil {
		return h.fail(c, "Failed to read row", err)
	}
	return c.JSON(rec)
}

// HandleSnapshot returns the current snapshot.
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot()
	if err != nil {
		return h.fail(c, "Failed to read snapshot", err)
	}
	return c.JSON(snap)
}

// HandleOperations returns the recent reconcile batches.
func (h *Handler) HandleOperations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"batches": h.service.RecentBatches()})
}

// HandleAddTeam adds a new team.
func (h *Handler) HandleAddTeam(c *fiber.Ctx) error {
	var in NewTeam
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	rec, err := h.service.AddTeam(c.Context(), in)
	if err != nil {
		return h.fail(c, "Failed to add team", err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// HandleIncrementWins adds one win to a team by id.
func (h *Handler) HandleIncrementWins(c *fiber.Ctx) error {
	rec, err := h.service.IncrementWins(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to increment wins", err)
	}
	return c.JSON(rec)
}

// HandleIncrementWinsAt adds one win to the team at a section/row position.
func (h *Handler) HandleIncrementWinsAt(c *fiber.Ctx) error {
	section, row, ok := position(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "section and row must be integers",
		})
	}

	rec, err := h.service.IncrementWinsAt(c.Context(), section, row)
	if err != nil {
		return h.fail(c, "Failed to increment wins", err)
	}
	return c.JSON(rec)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, liveview.ErrIndexOutOfRange):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrInvalidRecord):
		return fiber.StatusBadRequest
	case errors.Is(err, liveview.ErrNotLoaded), errors.Is(err, liveview.ErrClosed):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func position(c *fiber.Ctx) (int, int, bool) {
	section, err := c.ParamsInt("section")
	if err != nil {
		return 0, 0, false
	}
	row, err := c.ParamsInt("row")
	if err != nil {
		return 0, 0, false
	}
	return section, row, true
}
