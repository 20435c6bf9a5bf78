package sync

import (
	"errors"

	"delivery-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync pipeline.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/run", h.HandleRun)
	group.Get("/datasets", h.HandleDatasets)
	group.Get("/snapshots", h.HandleSnapshots)
}

// HandleRun triggers one sync run.
// @Summary Run Sync
// @Description Runs the fetch/reconcile pipeline once. Pass force=true to bypass the snapshot cache.
// @Tags sync
// @Accept json
// @Produce json
// @Param force query bool false "Bypass the snapshot cache"
// @Success 200 {object} sync.Result "Sync result with statistics"
// @Failure 502 {object} sync.Result "Fetch or transaction failure"
// @Router /sync/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	force := c.QueryBool("force", false)
	l := logger.WithRayID(h.service.logger, c)

	l.Info("Sync run requested", zap.Bool("force", force))
	result := h.service.Run(c.Context(), force)
	if !result.Success {
		// Operators must be able to tell a failed sync from a
		// successful-with-warnings one; failures get a failure status.
		return c.Status(fiber.StatusBadGateway).JSON(result)
	}
	return c.JSON(result)
}

// HandleDatasets reports the snapshot cache state.
// @Summary Cache Status
// @Description Reports whether an unexpired snapshot is cached and which datasets it holds.
// @Tags sync
// @Produce json
// @Success 200 {object} sync.CacheStatus "Cache status"
// @Router /sync/datasets [get]
func (h *Handler) HandleDatasets(c *fiber.Ctx) error {
	return c.JSON(h.service.CacheStatus())
}

// HandleSnapshots lists archived raw snapshots.
// @Summary List Snapshots
// @Description Lists the raw snapshot objects archived for this partner.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string][]string "Archived snapshot keys"
// @Failure 503 {object} map[string]string "Archive not configured"
// @Router /sync/snapshots [get]
func (h *Handler) HandleSnapshots(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.ListSnapshots(c.Context())
	if err != nil {
		if errors.Is(err, ErrArchiveDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Snapshot listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"snapshots": keys})
}
