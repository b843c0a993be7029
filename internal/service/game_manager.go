// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns every live game. Its lock guards only the map; each game
// serializes its own engine.
type GameManager struct {
	games  map[string]*model.Game
	mu     sync.RWMutex
	logger log.Interface
}

func NewGameManager(logger log.Interface) *GameManager {
	return &GameManager{
		games:  make(map[string]*model.Game),
		logger: logger,
	}
}

func (gm *GameManager) CreateGame(gameID string, opts ...chess.Option) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	gm.games[gameID] = model.NewGame(gameID, gm.logger, opts...)
	gm.logger.WithField("game", gameID).Info("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Undo(gameID string, playerID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Undo(playerID)
}

func (gm *GameManager) Redo(gameID string, playerID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Redo(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.RegisterConnection(playerID, conn)
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// Len is the number of live games.
func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
