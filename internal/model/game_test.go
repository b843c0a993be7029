package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = &log.Logger{Handler: discard.Default, Level: log.DebugLevel}

type fakeConn struct {
	mu   sync.Mutex
	msgs []ws.Message
	err  error
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, v.(ws.Message))
	return nil
}

func (c *fakeConn) last(t *testing.T) ws.Message {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.msgs)
	return c.msgs[len(c.msgs)-1]
}

func move(t *testing.T, from, to string) WSMove {
	t.Helper()
	var m WSMove
	require.NoError(t, json.Unmarshal([]byte(`{"from":"`+from+`","to":"`+to+`"}`), &m))
	return m
}

func seated(t *testing.T) *Game {
	t.Helper()
	g := NewGame("g1", testLogger)
	c, err := g.AddPlayer("alice")
	require.NoError(t, err)
	require.Equal(t, PlayerColorWhite, c)
	c, err = g.AddPlayer("bob")
	require.NoError(t, err)
	require.Equal(t, PlayerColorBlack, c)
	return g
}

func TestAddPlayer(t *testing.T) {
	g := seated(t)

	c, err := g.AddPlayer("alice")
	require.NoError(t, err)
	assert.Equal(t, PlayerColorWhite, c, "rejoining keeps the seat")

	_, err = g.AddPlayer("carol")
	assert.ErrorIs(t, err, ErrGameFull)
	assert.True(t, g.IsPlayerInGame("bob"))
	assert.False(t, g.IsPlayerInGame("carol"))
}

func TestMakeMoveEnforcesTurnOwnership(t *testing.T) {
	g := seated(t)

	_, err := g.MakeMove("bob", move(t, "e7", "e5"))
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, err = g.MakeMove("carol", move(t, "e2", "e4"))
	assert.ErrorIs(t, err, ErrNotInGame)

	state, err := g.MakeMove("alice", move(t, "e2", "e4"))
	require.NoError(t, err)
	assert.Equal(t, PlayerColorBlack, state.ToMove)
	require.NotNil(t, state.LastMove)
	assert.Equal(t, "e2e4", state.LastMove.String())
	assert.Len(t, state.LegalMoves, 20)
	assert.True(t, state.CanUndo)

	_, err = g.MakeMove("bob", move(t, "e7", "e4"))
	assert.True(t, errors.Is(err, chess.ErrIllegalMove))
}

func TestUndoRedoEitherPlayer(t *testing.T) {
	g := seated(t)
	_, err := g.Undo("alice")
	assert.ErrorIs(t, err, ErrNothingToUndo)

	_, err = g.MakeMove("alice", move(t, "e2", "e4"))
	require.NoError(t, err)

	state, err := g.Undo("bob")
	require.NoError(t, err)
	assert.Equal(t, PlayerColorWhite, state.ToMove)
	assert.Nil(t, state.LastMove)
	assert.True(t, state.CanRedo)

	_, err = g.Undo("carol")
	assert.ErrorIs(t, err, ErrNotInGame)

	state, err = g.Redo("alice")
	require.NoError(t, err)
	assert.Equal(t, "e2e4", state.LastMove.String())
	_, err = g.Redo("alice")
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestStateJSON(t *testing.T) {
	g := seated(t)
	raw, err := json.Marshal(g.GetState())
	require.NoError(t, err)

	var view map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, "g1", view["gameId"])
	assert.Equal(t, "white", view["toMove"])
	assert.Equal(t, false, view["isCheck"])
	assert.Nil(t, view["lastMove"])
	assert.Nil(t, view["checkedKing"])
	assert.Equal(t, []interface{}{}, view["moveHistory"])

	players := view["players"].(map[string]interface{})
	assert.Equal(t, "bob", players["black"].(map[string]interface{})["id"])

	rows := view["boardState"].(map[string]interface{})["board"].([]interface{})
	e1 := rows[0].([]interface{})[4].(map[string]interface{})
	assert.Equal(t, "king", e1["type"])
	assert.Equal(t, "white", e1["color"])
}

func TestBroadcastReachesConnections(t *testing.T) {
	g := seated(t)
	white, black, watcher := &fakeConn{}, &fakeConn{}, &fakeConn{}
	g.RegisterConnection("alice", white)
	g.RegisterConnection("bob", black)
	g.RegisterConnection("carol", watcher)
	assert.True(t, g.GetState().Players.White.Connected)

	_, err := g.MakeMove("alice", move(t, "e2", "e4"))
	require.NoError(t, err)

	for _, c := range []*fakeConn{white, black, watcher} {
		msg := c.last(t)
		assert.Equal(t, ws.MessageTypeGameState, msg.Type)
		var state GameState
		require.NoError(t, json.Unmarshal(msg.Payload, &state))
		assert.Equal(t, PlayerColorBlack, state.ToMove)
	}

	g.SendError("bob", ErrNotYourTurn)
	assert.Equal(t, ws.MessageTypeError, black.last(t).Type)
	assert.Equal(t, ws.MessageTypeGameState, white.last(t).Type)
}

func TestFailedWriteDropsConnection(t *testing.T) {
	g := seated(t)
	broken := &fakeConn{err: errors.New("closed")}
	g.RegisterConnection("alice", broken)
	assert.False(t, g.GetState().Players.White.Connected)
}

func TestStaleUnregisterKeepsReplacement(t *testing.T) {
	g := seated(t)
	old, replacement := &fakeConn{}, &fakeConn{}
	g.RegisterConnection("alice", old)
	g.RegisterConnection("alice", replacement)

	g.UnregisterConnection("alice", old)
	assert.True(t, g.GetState().Players.White.Connected)

	g.UnregisterConnection("alice", replacement)
	assert.False(t, g.GetState().Players.White.Connected)
}

func TestConcurrentChangesBroadcastFinalState(t *testing.T) {
	g := seated(t)
	white, black := &fakeConn{}, &fakeConn{}
	g.RegisterConnection("alice", white)
	g.RegisterConnection("bob", black)
	e4 := move(t, "e2", "e4")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			g.MakeMove("alice", e4)
		}()
		go func() {
			defer wg.Done()
			g.Undo("bob")
		}()
		go func() {
			defer wg.Done()
			g.Redo("alice")
		}()
	}
	wg.Wait()

	want, err := json.Marshal(g.GetState())
	require.NoError(t, err)
	for _, c := range []*fakeConn{white, black} {
		msg := c.last(t)
		require.Equal(t, ws.MessageTypeGameState, msg.Type)
		assert.JSONEq(t, string(want), string(msg.Payload))
	}
}
