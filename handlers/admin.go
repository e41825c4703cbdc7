package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type assignRequest struct {
	AdminID        *uint `json:"adminId"`
	Row            *int  `json:"row"`
	Col            *int  `json:"col"`
	AssignToUserID *uint `json:"assignToUserId"` // null clears the square
}

// AssignSquare is the admin override of a square's owner.
func (h *SquaresHandler) AssignSquare(c *fiber.Ctx) error {
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.AdminID == nil || req.Row == nil || req.Col == nil {
		return badRequest(c, "adminId, row and col are required")
	}

	err := h.svc.Reassign(c.UserContext(), c.Params("code"), *req.Row, *req.Col, *req.AdminID, req.AssignToUserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type winnerRequest struct {
	AdminID  *uint    `json:"adminId"`
	Row      *int     `json:"row"`
	Col      *int     `json:"col"`
	Quarters []string `json:"quarters"`
}

func (h *SquaresHandler) SetWinner(c *fiber.Ctx) error {
	var req winnerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.AdminID == nil || req.Row == nil || req.Col == nil {
		return badRequest(c, "adminId, row and col are required")
	}

	winners, err := h.svc.SetWinners(c.UserContext(), c.Params("code"), *req.Row, *req.Col, *req.AdminID, req.Quarters)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "winners": winners})
}

type adminRequest struct {
	AdminID *uint `json:"adminId"`
}

func (h *SquaresHandler) parseAdmin(c *fiber.Ctx) (uint, bool) {
	var req adminRequest
	if err := c.BodyParser(&req); err != nil || req.AdminID == nil {
		return 0, false
	}
	return *req.AdminID, true
}

func (h *SquaresHandler) StartGame(c *fiber.Ctx) error {
	adminID, ok := h.parseAdmin(c)
	if !ok {
		return badRequest(c, "adminId is required")
	}

	game, err := h.svc.StartGame(c.UserContext(), c.Params("code"), adminID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"status":     game.Status,
		"rowNumbers": game.RowNumbers,
		"colNumbers": game.ColNumbers,
	})
}

func (h *SquaresHandler) CompleteGame(c *fiber.Ctx) error {
	adminID, ok := h.parseAdmin(c)
	if !ok {
		return badRequest(c, "adminId is required")
	}

	game, err := h.svc.CompleteGame(c.UserContext(), c.Params("code"), adminID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "status": game.Status})
}
