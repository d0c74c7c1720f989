package event

import (
	"club-sync/internal/common/api"
	"club-sync/internal/config"
	"club-sync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EventApi struct {
	controller *EventController
	config     *config.Config
}

func NewEventApi(controller *EventController, config *config.Config) api.Route {
	return &EventApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all event routes
func (h *EventApi) Setup(app *fiber.App) {
	eventGroup := app.Group("/api/events", middleware.AuthMiddleware(h.config.SkipAuth))

	eventGroup.Get("/", h.controller.ListEvents)
	eventGroup.Get("/stats", h.controller.EventStats)
	eventGroup.Get("/:id", h.controller.GetEvent)
	eventGroup.Get("/:id/attendance", h.controller.EventAttendance)
	eventGroup.Post("/", h.controller.CreateEvent)
	eventGroup.Put("/:id", h.controller.UpdateEvent)
	eventGroup.Delete("/:id", h.controller.DeleteEvent)
	eventGroup.Post("/:id/push", h.controller.PushEvent)
	eventGroup.Put("/:id/responses", h.controller.UpdateEventResponse)
}
