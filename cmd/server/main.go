package main

import (
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}
	logger := cfg.Logger(os.Stderr)
	log.Log = logger

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(controller.RequestLogger(logger))

	gameManager := service.NewGameManager(logger)
	gameService := service.NewGameService(gameManager)
	controller.Routes(app, gameService, cfg.Origins(), logger)

	logger.WithField("addr", cfg.Addr).Info("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
