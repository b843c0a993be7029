package controller

import (
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      log.Interface
}

func NewWebSocketController(gameService *service.GameService, logger log.Interface) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	logger := wsc.logger.WithFields(log.Fields{"game": gameID, "player": playerID})

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.WithError(err).Warn("failed to register connection")
		reject(c, logger, err)
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("read loop finished")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.WithError(err).WithField("type", msg.Type).Debug("message rejected")
			wsc.gameService.SendError(gameID, playerID, err)
		}
	}
}

type closingConn interface {
	model.Conn
	Close() error
}

// reject reports err to a connection that could not be registered and
// closes it.
func reject(c closingConn, logger log.Interface, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		logger.WithError(merr).Error("failed to encode error")
	} else if werr := c.WriteJSON(msg); werr != nil {
		logger.WithError(werr).Debug("failed to report registration error")
	}
	if cerr := c.Close(); cerr != nil {
		logger.WithError(cerr).Debug("close after failed registration")
	}
}

// handleMessage dispatches one inbound message. Successful changes reach the
// client through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	var err error
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("invalid move: %w", err)
		}
		_, err = wsc.gameService.HandleMove(gameID, playerID, move)
	case ws.MessageTypeUndo:
		_, err = wsc.gameService.Undo(gameID, playerID)
	case ws.MessageTypeRedo:
		_, err = wsc.gameService.Redo(gameID, playerID)
	default:
		err = fmt.Errorf("unknown message type: %s", msg.Type)
	}
	return err
}
