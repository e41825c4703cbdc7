package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"squares-pool/broadcast"
	"squares-pool/services"
)

// SquaresHandler adapts HTTP requests to the squares engine.
type SquaresHandler struct {
	svc *services.SquaresService
	hub *broadcast.Hub
}

func NewSquaresHandler(svc *services.SquaresService, hub *broadcast.Hub) *SquaresHandler {
	return &SquaresHandler{svc: svc, hub: hub}
}

func SetupSquaresRoutes(app *fiber.App, h *SquaresHandler) {
	app.Get("/health", Health)

	// 🔓 No session tokens: each call carries the ids it acts as, and the engine re-checks them.
	app.Post("/api/games", h.CreateGame)

	games := app.Group("/api/games/:code")
	games.Get("/info", h.Info)
	games.Post("/join", h.Join)
	games.Post("/login", h.Login)
	games.Get("/squares", h.Squares)
	games.Post("/squares", h.UpdateSquare)
	games.Post("/submit", h.SubmitPicks)
	games.Get("/events", h.Stream)

	// 🛡️ Admin routes: adminId is verified against the game's admin on every call.
	admin := games.Group("/admin")
	admin.Post("/assign-square", h.AssignSquare)
	admin.Post("/set-winner", h.SetWinner)
	admin.Post("/start", h.StartGame)
	admin.Post("/complete", h.CompleteGame)
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
