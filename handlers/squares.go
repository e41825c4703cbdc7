package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const (
	actionSelect   = "select"
	actionDeselect = "deselect"
)

type squareRequest struct {
	UserID *uint  `json:"userId"`
	Action string `json:"action"`
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
}

func (h *SquaresHandler) Squares(c *fiber.Ctx) error {
	board, err := h.svc.Board(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(board)
}

// UpdateSquare claims or releases a square for the requesting player.
func (h *SquaresHandler) UpdateSquare(c *fiber.Ctx) error {
	var req squareRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == nil || req.Row == nil || req.Col == nil || req.Action == "" {
		return badRequest(c, "userId, action, row and col are required")
	}

	var err error
	switch req.Action {
	case actionSelect:
		err = h.svc.Claim(c.UserContext(), c.Params("code"), *req.Row, *req.Col, *req.UserID)
	case actionDeselect:
		err = h.svc.Release(c.UserContext(), c.Params("code"), *req.Row, *req.Col, *req.UserID)
	default:
		return badRequest(c, "action must be select or deselect")
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type submitRequest struct {
	UserID *uint `json:"userId"`
}

func (h *SquaresHandler) SubmitPicks(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == nil {
		return badRequest(c, "userId is required")
	}

	if err := h.svc.SubmitPicks(c.UserContext(), c.Params("code"), *req.UserID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
