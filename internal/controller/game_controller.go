package controller

import (
	"bytes"
	"errors"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/fen"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
	logger      log.Interface
}

func NewGameController(gameService *service.GameService, logger log.Interface) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

// CreateGame starts a new game. The body is optional; {"fen": "..."} picks
// the starting position.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request: " + err.Error(),
			})
		}
	}
	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move: " + err.Error(),
		})
	}
	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameState, err := gc.gameService.Undo(c.Params("gameId"), playerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) Redo(c *fiber.Ctx) error {
	gameState, err := gc.gameService.Redo(c.Params("gameId"), playerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) RenderBoard(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := gc.gameService.RenderBoard(&buf, c.Params("gameId"), playerID(c)); err != nil {
		return gc.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	entry := gc.logger.WithError(err).WithFields(log.Fields{
		"path":   c.Path(),
		"status": status,
	})
	if status >= fiber.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, fen.ErrInvalid):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNothingToUndo),
		errors.Is(err, model.ErrNothingToRedo),
		errors.Is(err, chess.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, chess.ErrIllegalMove),
		errors.Is(err, chess.ErrPromotionRequired),
		errors.Is(err, chess.ErrInvalidPromotion):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}
