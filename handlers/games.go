package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"squares-pool/services"
)

type createGameRequest struct {
	Name           string          `json:"name"`
	AdminName      string          `json:"adminName"`
	AdminPhone     string          `json:"adminPhone"`
	PricePerSquare decimal.Decimal `json:"pricePerSquare"`
	PayoutQ1       decimal.Decimal `json:"payoutQ1"`
	PayoutQ2       decimal.Decimal `json:"payoutQ2"`
	PayoutQ3       decimal.Decimal `json:"payoutQ3"`
	PayoutFinal    decimal.Decimal `json:"payoutFinal"`
}

func (h *SquaresHandler) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.svc.CreateGame(c.UserContext(), services.CreateGameInput{
		Name:           req.Name,
		AdminName:      req.AdminName,
		AdminPhone:     req.AdminPhone,
		PricePerSquare: req.PricePerSquare,
		PayoutQ1:       req.PayoutQ1,
		PayoutQ2:       req.PayoutQ2,
		PayoutQ3:       req.PayoutQ3,
		PayoutFinal:    req.PayoutFinal,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

type joinRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	SquaresToBuy int    `json:"squaresToBuy"`
}

func (h *SquaresHandler) Join(c *fiber.Ctx) error {
	var req joinRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.svc.Join(c.UserContext(), c.Params("code"), services.JoinInput{
		Name:         req.Name,
		Phone:        req.Phone,
		SquaresToBuy: req.SquaresToBuy,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

type loginRequest struct {
	Phone string `json:"phone"`
}

func (h *SquaresHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.svc.Login(c.UserContext(), c.Params("code"), req.Phone)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(session)
}

func (h *SquaresHandler) Info(c *fiber.Ctx) error {
	info, err := h.svc.Info(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(info)
}
