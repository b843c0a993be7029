package model

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/apex/log"
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

var (
	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player is not in this game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Conn is the write side of a client connection. *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// The Game struct focuses on a single game's engine and its observers. The
// engine is not safe for concurrent use; every call goes through mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *chess.Game
	players     [2]*Player // indexed by chess.Color
	connections *GameConnections
	logger      log.Interface
}

type GameState struct {
	ID          string       `json:"gameId"`
	Board       *chess.Board `json:"boardState"`
	ToMove      PlayerColor  `json:"toMove"`
	MoveHistory []chess.Move `json:"moveHistory"`
	LastMove    *chess.Move  `json:"lastMove"`
	chess.Status
	CheckedKing    *chess.Square `json:"checkedKing"`
	LegalMoves     []chess.Move  `json:"legalMoves"`
	HalfMoveClock  int           `json:"halfMoveClock"`
	FullMoveNumber int           `json:"fullMoveNumber"`
	Repetitions    int           `json:"repetitions"`
	CanUndo        bool          `json:"canUndo"`
	CanRedo        bool          `json:"canRedo"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// NewGame starts a session. opts configure the engine, e.g. a starting
// position; the session's logger is always attached.
func NewGame(id string, logger log.Interface, opts ...chess.Option) *Game {
	logger = logger.WithField("game", id)
	return &Game{
		ID:          id,
		engine:      chess.NewGame(append(opts, chess.WithLogger(logger))...),
		connections: NewGameConnections(),
		logger:      logger,
	}
}

// AddPlayer seats playerID, White first. A player already seated gets their
// color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.colorOf(playerID); ok {
		return PlayerColorOf(c), nil
	}
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if g.players[c] == nil {
			g.players[c] = &Player{ID: playerID, Color: c}
			g.logger.WithFields(log.Fields{"player": playerID, "color": c}).Info("player joined")
			return PlayerColorOf(c), nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) colorOf(playerID string) (chess.Color, bool) {
	for _, p := range g.players {
		if p != nil && p.ID == playerID {
			return p.Color, true
		}
	}
	return chess.White, false
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	e := g.engine
	s := GameState{
		ID:             g.ID,
		Board:          e.Board(),
		ToMove:         PlayerColorOf(e.Turn()),
		MoveHistory:    nonNil(e.History()),
		LastMove:       e.LastMove(),
		Status:         e.Status(),
		LegalMoves:     nonNil(e.LegalMoves()),
		HalfMoveClock:  e.HalfMoveClock(),
		FullMoveNumber: e.FullMoveNumber(),
		Repetitions:    e.Repetitions(),
		CanUndo:        e.CanUndo(),
		CanRedo:        e.CanRedo(),
	}
	if sq, ok := e.CheckedKing(); ok {
		s.CheckedKing = &sq
	}
	s.Players.White = g.clientPlayer(chess.White)
	s.Players.Black = g.clientPlayer(chess.Black)
	return s
}

func (g *Game) clientPlayer(c chess.Color) ClientPlayer {
	p := g.players[c]
	if p == nil {
		return ClientPlayer{Color: PlayerColorOf(c)}
	}
	return ClientPlayer{
		ID:        p.ID,
		Color:     PlayerColorOf(c),
		Connected: g.connections.has(p.ID),
	}
}

func nonNil(moves []chess.Move) []chess.Move {
	if moves == nil {
		return []chess.Move{}
	}
	return moves
}

// MakeMove plays move for playerID, who must own the side to move. The new
// state is broadcast before g.mu is released, so clients see states in
// commit order.
func (g *Game) MakeMove(playerID string, move WSMove) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.colorOf(playerID)
	if !ok {
		return GameState{}, ErrNotInGame
	}
	if color != g.engine.Turn() {
		return GameState{}, ErrNotYourTurn
	}
	if err := g.engine.MakeMove(move.From, move.To, move.Promotion); err != nil {
		return GameState{}, err
	}
	state := g.state()
	g.logger.WithFields(log.Fields{"player": playerID, "move": move.String()}).Info("move played")
	g.broadcast(state)
	return state, nil
}

// Undo takes back the last move. Either player may ask for it.
func (g *Game) Undo(playerID string) (GameState, error) {
	return g.step(playerID, "undo", g.engine.Undo, ErrNothingToUndo)
}

// Redo replays the last move taken back.
func (g *Game) Redo(playerID string) (GameState, error) {
	return g.step(playerID, "redo", g.engine.Redo, ErrNothingToRedo)
}

func (g *Game) step(playerID, name string, fn func() (chess.Snapshot, bool), unavailable error) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.colorOf(playerID); !ok {
		return GameState{}, ErrNotInGame
	}
	if _, ok := fn(); !ok {
		return GameState{}, unavailable
	}
	state := g.state()
	g.logger.WithField("player", playerID).Info(name)
	g.broadcast(state)
	return state, nil
}

// RegisterConnection attaches conn as playerID's connection, replacing any
// earlier one, and pushes the current state to everyone. Spectators may
// connect; only seated players can act.
func (g *Game) RegisterConnection(playerID string, conn Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.connections.mu.Lock()
	_, replaced := g.connections.connections[playerID]
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	g.logger.WithFields(log.Fields{"player": playerID, "replaced": replaced}).Info("connection registered")
	g.broadcast(g.state())
}

// UnregisterConnection drops conn if it is still playerID's current
// connection. A stale connection closing must not evict its replacement.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, ok := g.connections.connections[playerID]; ok && current == conn {
		delete(g.connections.connections, playerID)
		g.logger.WithField("player", playerID).Info("connection unregistered")
	}
}

// SendError reports err to playerID only.
func (g *Game) SendError(playerID string, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		g.logger.WithError(merr).Error("failed to encode error")
		return
	}
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if conn, ok := g.connections.connections[playerID]; ok {
		g.write(playerID, conn, msg)
	}
}

// broadcast writes state to every connection. Callers hold g.mu; writes
// hold the connections mutex, so a connection never sees two concurrent
// writers. Lock order is always g.mu then connections.mu.
func (g *Game) broadcast(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		g.logger.WithError(err).Error("failed to marshal state")
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		g.write(playerID, conn, msg)
	}
}

// write must be called with connections.mu held.
func (g *Game) write(playerID string, conn Conn, msg ws.Message) {
	if err := conn.WriteJSON(msg); err != nil {
		g.logger.WithError(err).WithField("player", playerID).Warn("dropping connection after failed write")
		delete(g.connections.connections, playerID)
	}
}

func (gc *GameConnections) has(playerID string) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	_, ok := gc.connections[playerID]
	return ok
}
