// Command perft counts move-tree leaves from a position, optionally split by
// root move, for checking the move generator against published tables.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/fen"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func main() {
	var (
		position = flag.String("fen", startFEN, "starting position")
		depth    = flag.Int("depth", 3, "search depth in plies")
		divide   = flag.Bool("divide", false, "print the count under each root move")
	)
	flag.Parse()
	log.SetHandler(text.New(os.Stderr))

	if *depth < 1 {
		log.WithField("depth", *depth).Fatal("depth must be at least 1")
	}
	pos, err := fen.Parse(*position)
	if err != nil {
		log.WithError(err).Fatal("parsing position")
	}

	start := time.Now()
	var nodes int
	if *divide {
		nodes = divideRoot(pos, *depth)
	} else {
		nodes = chess.Perft(pos.Board, pos.Turn, pos.LastMove, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("nodes %d\n", nodes)
	log.WithFields(log.Fields{
		"depth":   *depth,
		"elapsed": elapsed.Round(time.Millisecond).String(),
		"nps":     int(float64(nodes) / elapsed.Seconds()),
	}).Info("perft done")
}

var promotions = []chess.Kind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

func divideRoot(pos fen.Position, depth int) int {
	gen := chess.NewGenerator()
	st := &chess.State{LastMove: pos.LastMove}
	total := 0
	for _, m := range gen.LegalMoves(pos.Board, pos.Turn, st) {
		choices := []chess.Move{m}
		if m.IsPromotion() {
			choices = choices[:0]
			for _, k := range promotions {
				p, err := m.Promote(k)
				if err != nil {
					log.WithError(err).Fatal("promoting")
				}
				choices = append(choices, p)
			}
		}
		for _, c := range choices {
			c := c
			child := chess.Executor{}.Apply(pos.Board, c)
			n := chess.Perft(child, pos.Turn.Opponent(), &c, depth-1)
			fmt.Printf("%s: %d\n", c, n)
			total += n
		}
	}
	return total
}
