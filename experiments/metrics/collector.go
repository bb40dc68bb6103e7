package metrics

import (
	"time"

	"blackwhite/game"

	"github.com/google/uuid"
)

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	Reward float64 // As handed to the mover's agent, before any shaping
	Won    bool
}

type GameMetric struct {
	ID             uuid.UUID
	StartingPlayer game.Player
	Winner         game.Player // 0 if nobody won
	Status         game.Status
	Capped         bool // Stopped at the move limit
	Aborted        bool // Stopped by the player
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers the metrics of a single game.
type Collector interface {
	Start(startingPlayer game.Player)
	AddMove(move MoveMetric)
	Moves() []MoveMetric
	Complete(winner game.Player, status game.Status) GameMetric
}

type collector struct {
	game  GameMetric
	moves []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(startingPlayer game.Player) {
	c.game = GameMetric{
		ID:             uuid.New(),
		StartingPlayer: startingPlayer,
		StartTime:      time.Now(),
	}
	c.moves = nil
}

func (c *collector) AddMove(move MoveMetric) {
	move.Step = len(c.moves) + 1
	c.moves = append(c.moves, move)
}

func (c *collector) Moves() []MoveMetric {
	return c.moves
}

func (c *collector) Complete(winner game.Player, status game.Status) GameMetric {
	c.game.Winner = winner
	c.game.Status = status
	c.game.EndTime = time.Now()
	c.game.Duration = c.game.EndTime.Sub(c.game.StartTime)
	c.game.TotalMoves = len(c.moves)
	return c.game
}
