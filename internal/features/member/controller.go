package member

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type MemberController struct {
	Service MemberService
}

func NewMemberController(service MemberService) *MemberController {
	return &MemberController{
		Service: service,
	}
}

// ListMembers godoc
func (ctrl *MemberController) ListMembers(c *fiber.Ctx) error {
	filters := Filters{
		GroupID:    c.Query("group_id"),
		SubgroupID: c.Query("subgroup_id"),
		Search:     c.Query("search"),
	}
	limit := int64(c.QueryInt("limit", 100))
	skip := int64(c.QueryInt("skip", 0))

	members, total, err := ctrl.Service.List(c.Context(), filters, limit, skip)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":  members,
		"total": total,
		"limit": limit,
		"skip":  skip,
	})
}

// GetMember godoc
func (ctrl *MemberController) GetMember(c *fiber.Ctx) error {
	m, err := ctrl.Service.Get(c.Context(), c.Params("id"))
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

	return c.JSON(m)
}

// UpdateMember godoc
func (ctrl *MemberController) UpdateMember(c *fiber.Ctx) error {
	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	m, err := ctrl.Service.Update(c.Context(), c.Params("id"), input)
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
		"message": "Member updated successfully",
		"data":    m,
	})
}

// DeleteMember godoc
func (ctrl *MemberController) DeleteMember(c *fiber.Ctx) error {
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
		"message": "Member deleted successfully",
	})
}
