package model

import "github.com/benbeisheim/chess-backend/internal/chess"

type Player struct {
	ID    string
	Color chess.Color
}

type ClientPlayer struct {
	ID        string      `json:"id"`
	Color     PlayerColor `json:"color"`
	Connected bool        `json:"connected"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func PlayerColorOf(c chess.Color) PlayerColor {
	if c == chess.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}
