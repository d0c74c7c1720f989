package scheduler

import (
	"club-sync/internal/common/api"
	"club-sync/internal/config"
	"club-sync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SchedulerApi struct {
	controller *SchedulerController
	config     *config.Config
}

func NewSchedulerApi(controller *SchedulerController, config *config.Config) api.Route {
	return &SchedulerApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all scheduler routes
func (h *SchedulerApi) Setup(app *fiber.App) {
	jobGroup := app.Group("/api/scheduler", middleware.AuthMiddleware(h.config.SkipAuth))

	jobGroup.Get("/status", h.controller.SchedulerStatus)
	jobGroup.Get("/jobs", h.controller.ListJobs)
	jobGroup.Post("/jobs/:id/trigger", h.controller.TriggerJob)
}
