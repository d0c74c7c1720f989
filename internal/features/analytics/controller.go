package analytics

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController struct {
	Service AnalyticsService
}

func NewAnalyticsController(service AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		Service: service,
	}
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, want RFC3339", key)
	}
	return &t, nil
}

// AttendanceTrends godoc
func (ctrl *AnalyticsController) AttendanceTrends(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	trends, err := ctrl.Service.AttendanceTrends(c.Context(), c.Query("period", PeriodMonth), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(trends)
}

// ResponseRates godoc
func (ctrl *AnalyticsController) ResponseRates(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rates, err := ctrl.Service.ResponseRates(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(rates)
}

// EventTypeDistribution godoc
func (ctrl *AnalyticsController) EventTypeDistribution(c *fiber.Ctx) error {
	shares, err := ctrl.Service.EventTypeDistribution(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data": shares,
	})
}

// MemberParticipation godoc
func (ctrl *AnalyticsController) MemberParticipation(c *fiber.Ctx) error {
	participation, err := ctrl.Service.MemberParticipation(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(participation)
}

// Summary godoc
func (ctrl *AnalyticsController) Summary(c *fiber.Ctx) error {
	summary, err := ctrl.Service.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(summary)
}

// ExportAttendance godoc
func (ctrl *AnalyticsController) ExportAttendance(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.AttendanceXLSX(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
