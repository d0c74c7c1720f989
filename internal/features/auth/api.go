package auth

import (
	"club-sync/internal/common/api"
	"club-sync/internal/config"
	"club-sync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) api.Route {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all auth routes
func (h *AuthApi) Setup(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/login", h.controller.Login)
	authGroup.Post("/register", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Register)
	authGroup.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
}
