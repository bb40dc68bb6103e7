// meta/meta.go
package meta

// LEARNING_RATE is the step size alpha of the temporal-difference update.
const LEARNING_RATE = 0.1

// DISCOUNT is the weight gamma given to the best follow-up value.
const DISCOUNT = 0.9

// EPSILON is the probability of picking a uniformly random move.
const EPSILON = 0.1

// Rewards handed out by the driver after each move.
const (
	WIN_REWARD       = 1.0
	STALEMATE_REWARD = -0.1
	NO_REWARD        = 0.0
)

// Shark reward shaping.
const (
	SHARK_WIN_REWARD    = 2.0
	SHARK_THREAT_REWARD = -1.0
)

// MAX_TURNS caps a single game; the game is abandoned as a draw after this many moves.
const MAX_TURNS = 500
