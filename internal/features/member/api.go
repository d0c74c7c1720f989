package member

import (
	"club-sync/internal/common/api"
	"club-sync/internal/config"
	"club-sync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MemberApi struct {
	controller *MemberController
	config     *config.Config
}

func NewMemberApi(controller *MemberController, config *config.Config) api.Route {
	return &MemberApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all member routes
func (h *MemberApi) Setup(app *fiber.App) {
	memberGroup := app.Group("/api/members", middleware.AuthMiddleware(h.config.SkipAuth))

	memberGroup.Get("/", h.controller.ListMembers)
	memberGroup.Get("/:id", h.controller.GetMember)
	memberGroup.Put("/:id", h.controller.UpdateMember)
	memberGroup.Delete("/:id", h.controller.DeleteMember)
}
