package group

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type GroupController struct {
	Service GroupService
}

func NewGroupController(service GroupService) *GroupController {
	return &GroupController{
		Service: service,
	}
}

// ListGroups godoc
func (ctrl *GroupController) ListGroups(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 100))
	skip := int64(c.QueryInt("skip", 0))

	groups, total, err := ctrl.Service.List(c.Context(), c.Query("search"), limit, skip)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":  groups,
		"total": total,
		"limit": limit,
		"skip":  skip,
	})
}

// GetGroup godoc
func (ctrl *GroupController) GetGroup(c *fiber.Ctx) error {
	g, err := ctrl.Service.Get(c.Context(), c.Params("id"))
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

	return c.JSON(g)
}

// UpdateGroup godoc
func (ctrl *GroupController) UpdateGroup(c *fiber.Ctx) error {
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	g, err := ctrl.Service.Update(c.Context(), c.Params("id"), input)
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

	return c.JSON(fiber.Map{
		"message": "Group updated successfully",
		"data":    g,
	})
}

// DeleteGroup godoc
func (ctrl *GroupController) DeleteGroup(c *fiber.Ctx) error {
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
		"message": "Group deleted successfully",
	})
}
