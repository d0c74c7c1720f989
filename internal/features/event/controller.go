package event

import (
	"errors"
	"time"

	"club-sync/internal/spond"

	"github.com/gofiber/fiber/v2"
)

type EventController struct {
	Service EventService
}

func NewEventController(service EventService) *EventController {
	return &EventController{
		Service: service,
	}
}

// ListEvents godoc
func (ctrl *EventController) ListEvents(c *fiber.Ctx) error {
	filters := Filters{
		EventType:        c.Query("event_type"),
		SyncStatus:       Status(c.Query("sync_status")),
		Search:           c.Query("search"),
		IncludeCancelled: c.QueryBool("include_cancelled", false),
		IncludeHidden:    c.QueryBool("include_hidden", false),
	}
	if v := c.Query("start_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid start_after, want RFC3339",
			})
		}
		filters.StartDate = &t
	}
	if v := c.Query("start_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid start_before, want RFC3339",
			})
		}
		filters.EndDate = &t
	}

	limit := int64(c.QueryInt("limit", 100))
	skip := int64(c.QueryInt("skip", 0))

	events, total, err := ctrl.Service.List(c.Context(), filters, limit, skip)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":  events,
		"total": total,
		"limit": limit,
		"skip":  skip,
	})
}

// GetEvent godoc
func (ctrl *EventController) GetEvent(c *fiber.Ctx) error {
	ev, err := ctrl.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(ev)
}

// CreateEvent godoc
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ev, err := ctrl.Service.CreateLocal(c.Context(), input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Event created successfully",
		"data":    ev,
	})
}

// UpdateEvent godoc
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ev, err := ctrl.Service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Event updated successfully",
		"data":    ev,
	})
}

// DeleteEvent godoc
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Event deleted successfully",
	})
}

// PushEvent godoc
func (ctrl *EventController) PushEvent(c *fiber.Ctx) error {
	ev, err := ctrl.Service.PushToSpond(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, ErrNoGroup):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case isRemoteError(err):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Event pushed successfully",
		"data":    ev,
	})
}

// UpdateEventResponse godoc
func (ctrl *EventController) UpdateEventResponse(c *fiber.Ctx) error {
	var body struct {
		MemberID string `json:"member_id"`
		Response string `json:"response"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.MemberID == "" || body.Response == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "member_id and response are required",
		})
	}

	ev, err := ctrl.Service.UpdateResponse(c.Context(), c.Params("id"), body.MemberID, body.Response)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, ErrNotSynced):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case isRemoteError(err):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Response updated successfully",
		"data":    ev,
	})
}

// EventStats godoc
func (ctrl *EventController) EventStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": stats,
	})
}

// EventAttendance godoc
func (ctrl *EventController) EventAttendance(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.AttendanceXLSX(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func isRemoteError(err error) bool {
	var authErr *spond.AuthError
	var rateErr *spond.RateLimitError
	var valErr *spond.ValidationError
	var netErr *spond.NetworkError
	return errors.As(err, &authErr) ||
		errors.As(err, &rateErr) ||
		errors.As(err, &valErr) ||
		errors.As(err, &netErr)
}
