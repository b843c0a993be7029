package controller

import (
	"github.com/apex/log"
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Routes mounts the REST and websocket endpoints on app.
func Routes(app *fiber.App, gameService *service.GameService, origins []string, logger log.Interface) {
	gameController := NewGameController(gameService, logger)
	wsController := NewWebSocketController(gameService, logger)

	// Set up WebSocket routes
	app.Use("/ws", middleware.EnsurePlayerID(logger))
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID(logger))

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/board.svg", gameController.RenderBoard)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", gameController.Undo)
	gameRoutes.Post("/:gameId/redo", gameController.Redo)
}

// RequestLogger logs every request once it has been handled.
func RequestLogger(logger log.Interface) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		logger.WithFields(log.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": c.Response().StatusCode(),
		}).Debug("request")
		return err
	}
}
