package learner

import (
	"blackwhite/game"
	"blackwhite/meta"
)

// Shaper turns the reward supplied by the driver into the reward the
// learner trains on. after is the board right after the mover's move.
type Shaper interface {
	Name() string
	Shape(after game.Board, mover game.Player, reward float64) float64
}

// Default trains on the driver's reward unchanged.
type Default struct{}

func (Default) Name() string { return "default" }

func (Default) Shape(_ game.Board, _ game.Player, reward float64) float64 {
	return reward
}

// Shark punishes any move that leaves the opponent a winning reply and
// doubles down on wins.
type Shark struct{}

func (Shark) Name() string { return "shark" }

func (Shark) Shape(after game.Board, mover game.Player, reward float64) float64 {
	if game.CanWinNext(after, mover.Opponent()) {
		return meta.SHARK_THREAT_REWARD
	}
	if reward == meta.WIN_REWARD {
		return meta.SHARK_WIN_REWARD
	}
	return reward
}
