package engine

import (
	"context"

	"blackwhite/agent"
	"blackwhite/experiments/metrics"
	"blackwhite/game"
	"blackwhite/meta"
)

// Action is what a seat decided to do on its turn.
type Action int

const (
	Play Action = iota
	Undo
	Reset
	Quit
)

type Choice struct {
	Action Action
	Move   game.Move // Only for Play
}

// Chooser picks a move for a human seat. The returned move must be legal.
type Chooser interface {
	Choose(ctx context.Context, gs *game.GameState) (Choice, error)
}

// Seat is one side of the board. With a Chooser the Chooser moves and the
// agent, if any, only learns from those moves.
type Seat struct {
	Agent   agent.Agent
	Chooser Chooser
}

// Saver flushes every learning table taking part in a game.
type Saver interface {
	SaveAll() error
}

type Result struct {
	Game  metrics.GameMetric
	Moves []metrics.MoveMetric
}

type Scoreboard struct {
	Games      int
	BlackWins  int
	WhiteWins  int
	Stalemates int
	Capped     int
	Aborted    int
}

func (s *Scoreboard) add(g metrics.GameMetric) {
	s.Games++
	switch {
	case g.Winner == game.Black:
		s.BlackWins++
	case g.Winner == game.White:
		s.WhiteWins++
	case g.Status == game.Stalemate:
		s.Stalemates++
	case g.Capped:
		s.Capped++
	case g.Aborted:
		s.Aborted++
	}
}

// Reward is the reward handed to the mover's agent after a move.
func Reward(after game.Board, mover game.Player) float64 {
	if game.IsWinning(after, mover) {
		return meta.WIN_REWARD
	}
	if len(game.LegalMoves(after, mover)) == 0 {
		return meta.STALEMATE_REWARD
	}
	return meta.NO_REWARD
}
