package scheduler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type SchedulerController struct {
	Service SchedulerService
}

func NewSchedulerController(service SchedulerService) *SchedulerController {
	return &SchedulerController{
		Service: service,
	}
}

// SchedulerStatus godoc
func (ctrl *SchedulerController) SchedulerStatus(c *fiber.Ctx) error {
	return c.JSON(ctrl.Service.Status())
}

// ListJobs godoc
func (ctrl *SchedulerController) ListJobs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": ctrl.Service.ListJobs(),
	})
}

// TriggerJob godoc
func (ctrl *SchedulerController) TriggerJob(c *fiber.Ctx) error {
	run, err := ctrl.Service.TriggerJob(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, ErrSyncInProgress):
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
		"message": "Sync job triggered successfully",
		"data":    run,
	})
}
