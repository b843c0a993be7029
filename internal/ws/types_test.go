package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(MessageTypeError, ErrorPayload{Error: "not your turn"})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","payload":{"error":"not your turn"}}`, string(raw))
}

func TestMessageWithoutPayload(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"undo"}`), &msg))
	assert.Equal(t, MessageTypeUndo, msg.Type)
	assert.Empty(t, msg.Payload)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"undo"}`, string(raw))
}
