package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"squares-pool/broadcast"
	"squares-pool/config"
	"squares-pool/handlers"
	"squares-pool/middleware"
	"squares-pool/services"
	"squares-pool/utils"
	"squares-pool/utils/logger"
	"squares-pool/workers"
)

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := config.OpenDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Errorf("failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var archiver services.Archiver
	if cfg.R2.Enabled() {
		r2, err := utils.NewR2Archiver(ctx, cfg.R2)
		if err != nil {
			logger.Errorf("failed to initialize R2 client: %v", err)
			os.Exit(1)
		}
		archiver = r2
	} else {
		logger.Warnf("⚠️  R2 not configured, completed games will not be archived")
	}

	hub := broadcast.NewHub(broadcast.DefaultBuffer)
	svc := services.NewSquaresService(db, hub, archiver)

	heartbeat, err := workers.StartHeartbeat(hub, cfg.HeartbeatInterval)
	if err != nil {
		logger.Errorf("failed to start heartbeat: %v", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		AppName:      "squares-pool",
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler,
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID, Cache-Control",
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
		MaxAge:        86400, // 24 hours
	}))

	handlers.SetupSquaresRoutes(app, handlers.NewSquaresHandler(svc, hub))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Errorf("Server error: %v", err)
			stop()
		}
	}()

	logger.Infof("✅ Server running on http://localhost:%s", cfg.Port)
	logger.Infof("✅ CORS configured for origins: %s", strings.Join(cfg.AllowedOrigins, ","))

	<-ctx.Done()
	logger.Info("Shutting down server...")

	if err := heartbeat.Shutdown(); err != nil {
		logger.Warnf("heartbeat shutdown: %v", err)
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warnf("server shutdown: %v", err)
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
