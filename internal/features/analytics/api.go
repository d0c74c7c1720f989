package analytics

import (
	"club-sync/internal/common/api"
	"club-sync/internal/config"
	"club-sync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsApi struct {
	controller *AnalyticsController
	config     *config.Config
}

func NewAnalyticsApi(controller *AnalyticsController, config *config.Config) api.Route {
	return &AnalyticsApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all analytics routes
func (h *AnalyticsApi) Setup(app *fiber.App) {
	analyticsGroup := app.Group("/api/analytics", middleware.AuthMiddleware(h.config.SkipAuth))

	analyticsGroup.Get("/summary", h.controller.Summary)
	analyticsGroup.Get("/attendance-trends", h.controller.AttendanceTrends)
	analyticsGroup.Get("/response-rates", h.controller.ResponseRates)
	analyticsGroup.Get("/event-types", h.controller.EventTypeDistribution)
	analyticsGroup.Get("/member-participation", h.controller.MemberParticipation)
	analyticsGroup.Get("/export/attendance", h.controller.ExportAttendance)
}
