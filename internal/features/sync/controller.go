package sync

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{
		Service: service,
	}
}

// ListSyncHistory godoc
func (ctrl *SyncController) ListSyncHistory(c *fiber.Ctx) error {
	var kind Kind
	if v := c.Query("sync_type", c.Query("kind")); v != "" {
		parsed, err := ParseKind(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		kind = parsed
	}

	runs, err := ctrl.Service.History(c.Context(), kind, int64(c.QueryInt("limit", 50)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": runs,
	})
}

// LatestSyncRun godoc
func (ctrl *SyncController) LatestSyncRun(c *fiber.Ctx) error {
	kind, err := ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	run, err := ctrl.Service.Latest(c.Context(), kind)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if run == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no runs recorded",
		})
	}

	return c.JSON(run)
}

// RunSync godoc
func (ctrl *SyncController) RunSync(c *fiber.Ctx) error {
	kind, err := ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	run, err := ctrl.Service.Sync(c.Context(), kind)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, ErrSyncInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"data":  run,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Sync completed successfully",
		"data":    run,
	})
}
