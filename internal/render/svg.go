// Package render draws boards as SVG for clients that cannot draw their own.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/benbeisheim/chess-backend/internal/chess"
)

const (
	squareSize = 60
	margin     = 20
	boardSize  = 8*squareSize + 2*margin
)

const (
	lightFill   = "fill:#f0d9b5"
	darkFill    = "fill:#b58863"
	lastFill    = "fill:#cdd26a;fill-opacity:0.8"
	checkFill   = "fill:#e8453c;fill-opacity:0.8"
	glyphStyle  = "font-size:46px;text-anchor:middle;dominant-baseline:central;font-family:serif"
	legendStyle = "font-size:12px;text-anchor:middle;dominant-baseline:central;font-family:sans-serif;fill:#555"
)

var glyphs = map[chess.Color]map[chess.Kind]string{
	chess.White: {
		chess.King: "♔", chess.Queen: "♕", chess.Rook: "♖",
		chess.Bishop: "♗", chess.Knight: "♘", chess.Pawn: "♙",
	},
	chess.Black: {
		chess.King: "♚", chess.Queen: "♛", chess.Rook: "♜",
		chess.Bishop: "♝", chess.Knight: "♞", chess.Pawn: "♟",
	},
}

// Options selects the highlighted squares and the side drawn at the bottom.
type Options struct {
	LastMove    *chess.Move
	CheckedKing *chess.Square
	Flip        bool
}

// Board writes b to w as a standalone SVG document.
func Board(w io.Writer, b *chess.Board, opts Options) {
	canvas := svg.New(w)
	canvas.Start(boardSize, boardSize)
	defer canvas.End()

	canvas.Rect(0, 0, boardSize, boardSize, "fill:#ffffff")
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := chess.Sq(row, col)
			x, y := origin(sq, opts.Flip)
			canvas.Rect(x, y, squareSize, squareSize, squareFill(sq))
			if style, ok := highlight(sq, opts); ok {
				canvas.Rect(x, y, squareSize, squareSize, style)
			}
			if p := b.At(sq); p != nil {
				canvas.Text(x+squareSize/2, y+squareSize/2, glyphs[p.Color][p.Kind], glyphStyle)
			}
		}
	}
	legend(canvas, opts.Flip)
}

func origin(sq chess.Square, flip bool) (int, int) {
	row, col := sq.Row, sq.Col
	if flip {
		row, col = 7-row, 7-col
	}
	return margin + col*squareSize, margin + (7-row)*squareSize
}

func squareFill(sq chess.Square) string {
	if (sq.Row+sq.Col)%2 == 0 {
		return darkFill
	}
	return lightFill
}

func highlight(sq chess.Square, opts Options) (string, bool) {
	if opts.CheckedKing != nil && *opts.CheckedKing == sq {
		return checkFill, true
	}
	if opts.LastMove != nil && (opts.LastMove.From == sq || opts.LastMove.To == sq) {
		return lastFill, true
	}
	return "", false
}

func legend(canvas *svg.SVG, flip bool) {
	for i := 0; i < 8; i++ {
		file, rank := i, i
		if flip {
			file, rank = 7-i, 7-i
		}
		x := margin + i*squareSize + squareSize/2
		canvas.Text(x, boardSize-margin/2, string(rune('a'+file)), legendStyle)
		y := margin + (7-i)*squareSize + squareSize/2
		canvas.Text(margin/2, y, fmt.Sprint(rank+1), legendStyle)
	}
}
