package group

import (
	"club-sync/internal/common/api"
	"club-sync/internal/config"
	"club-sync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type GroupApi struct {
	controller *GroupController
	config     *config.Config
}

func NewGroupApi(controller *GroupController, config *config.Config) api.Route {
	return &GroupApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all group routes
func (h *GroupApi) Setup(app *fiber.App) {
	groupGroup := app.Group("/api/groups", middleware.AuthMiddleware(h.config.SkipAuth))

	groupGroup.Get("/", h.controller.ListGroups)
	groupGroup.Get("/:id", h.controller.GetGroup)
	groupGroup.Put("/:id", h.controller.UpdateGroup)
	groupGroup.Delete("/:id", h.controller.DeleteGroup)
}
