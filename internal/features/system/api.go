package system

import (
	"context"
	"time"

	"club-sync/internal/common/api"
	"club-sync/internal/database"

	"github.com/gofiber/fiber/v2"
)

type SystemApi struct {
	db *database.MongodbDB
}

func NewSystemApi(db *database.MongodbDB) api.Route {
	return &SystemApi{db: db}
}

// Setup registers the health routes
func (h *SystemApi) Setup(app *fiber.App) {
	app.Get("/health", h.health)
}

func (h *SystemApi) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	code := fiber.StatusOK
	if err := h.db.Client.Ping(ctx, nil); err != nil {
		status = "degraded"
		dbStatus = err.Error()
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"database": dbStatus,
		"time":     time.Now().UTC(),
	})
}
