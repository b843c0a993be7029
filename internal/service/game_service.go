package service

import (
	"fmt"
	"io"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/fen"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/render"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game from the initial position, or from startFEN when
// it is not empty.
func (gs *GameService) CreateGame(startFEN string) (string, error) {
	var opts []chess.Option
	if startFEN != "" {
		pos, err := fen.Parse(startFEN)
		if err != nil {
			return "", err
		}
		opts = pos.Options()
	}
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, opts...); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.GameState, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) Undo(gameID string, playerID string) (model.GameState, error) {
	return gs.gameManager.Undo(gameID, playerID)
}

func (gs *GameService) Redo(gameID string, playerID string) (model.GameState, error) {
	return gs.gameManager.Redo(gameID, playerID)
}

// RenderBoard writes the current board of gameID as SVG, drawn from the
// viewer's side when the viewer plays Black.
func (gs *GameService) RenderBoard(w io.Writer, gameID string, viewerID string) error {
	state, err := gs.gameManager.GetGameState(gameID)
	if err != nil {
		return err
	}
	render.Board(w, state.Board, render.Options{
		LastMove:    state.LastMove,
		CheckedKing: state.CheckedKing,
		Flip:        state.Players.Black.ID != "" && state.Players.Black.ID == viewerID,
	})
	return nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// SendError reports err to one player over their websocket, if connected.
func (gs *GameService) SendError(gameID string, playerID string, err error) {
	game, gerr := gs.gameManager.GetGame(gameID)
	if gerr != nil {
		return
	}
	game.SendError(playerID, err)
}
