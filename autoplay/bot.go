// Package autoplay drives a board with a greedy one-piece lookahead.
package autoplay

import (
	"math"

	"github.com/plus3/blockfall/tetris"
)

// Plan is the chosen placement for the active piece.
type Plan struct {
	Rotation int
	X        int
	Score    float64
}

// Bot is a tetris.InputSource. Each time a new piece appears it evaluates
// every reachable rotation and column, then steers toward the best one:
// rotations first, one per tick, then lateral moves, then a hard drop. Once
// the target rotation is reached the column is planned again from where the
// kicks actually left the piece.
type Bot struct {
	weights Weights
	budget  int

	spawned int
	plan    Plan
	ticks   int
	aligned bool
}

// New creates a bot. A piece that has not reached its target after budget
// ticks is hard dropped where it is.
func New(weights Weights, budget int) *Bot {
	return &Bot{weights: weights, budget: budget, spawned: -1}
}

// Plan returns the current placement target.
func (b *Bot) Plan() Plan { return b.plan }

func (b *Bot) Poll(board *tetris.Board) tetris.Intents {
	piece, ok := board.Piece()
	if !ok {
		return tetris.Intents{}
	}

	if n := board.Stats().PiecesSpawned; n != b.spawned {
		b.spawned = n
		b.ticks = 0
		b.aligned = false
		b.plan = Best(board.Grid(), piece, b.weights)
	}

	b.ticks++
	if b.ticks > b.budget {
		return tetris.Intents{HardDrop: true}
	}

	if !b.aligned {
		if piece.Rotation() != b.plan.Rotation {
			return tetris.Intents{Rotate: 1}
		}
		b.aligned = true
		b.plan = search(board.Grid(), piece, b.weights, 1)
	}

	switch x := piece.Position().X; {
	case x < b.plan.X:
		return tetris.Intents{Move: 1}
	case x > b.plan.X:
		return tetris.Intents{Move: -1}
	}
	return tetris.Intents{HardDrop: true}
}

// Best evaluates every placement of piece on g without modifying either.
// Placements are reached from the piece as it is, so rotations apply the
// same kicks the live piece would.
func Best(g *tetris.Grid, piece tetris.Piece, w Weights) Plan {
	turns := 4
	if piece.Kind() == tetris.O {
		turns = 1
	}
	return search(g, piece, w, turns)
}

func search(g *tetris.Grid, piece tetris.Piece, w Weights, turns int) Plan {
	best := Plan{Rotation: piece.Rotation(), X: piece.Position().X, Score: math.Inf(-1)}
	for turn := range turns {
		for dx := -g.Width(); dx <= g.Width(); dx++ {
			plan, ok := simulate(g, piece, turn, dx, w)
			if ok && plan.Score > best.Score {
				best = plan
			}
		}
	}
	return best
}

// simulate works on a copy of piece. Moving and rotating only read the grid,
// so the copy may stay bound to g; the lock is applied to a clone.
func simulate(g *tetris.Grid, piece tetris.Piece, turns, dx int, w Weights) (Plan, bool) {
	p := &piece
	for range turns {
		if !p.Rotate(1) {
			return Plan{}, false
		}
	}

	step := 1
	if dx < 0 {
		step = -1
	}
	for i := 0; i != dx; i += step {
		if !p.TryTranslate(step, 0) {
			return Plan{}, false
		}
	}

	plan := Plan{Rotation: p.Rotation(), X: p.Position().X}
	p.HardDrop()
	cells := p.Cells()
	sim := g.Clone()
	sim.Set(cells[:], p.Kind())
	cleared := tetris.ClearLines(sim)

	plan.Score = w.Score(Measure(sim, cleared.Count))
	return plan, true
}
