package agent

import (
	"fmt"
	"path/filepath"
	"strings"

	"blackwhite/game"
)

// Agent is what a driver needs from a learning player.
type Agent interface {
	Side() game.Player
	Variant() Variant
	// SelectMove returns false when p has no legal move.
	SelectMove(b game.Board, p game.Player) (game.Move, bool, error)
	// RecordOutcome trains on a move this agent's side made from before to after.
	RecordOutcome(before game.Board, m game.Move, reward float64, after game.Board) error
	Save() error
	Load() error
}

// Variant selects the reward shaping an agent trains with.
type Variant int

const (
	Default Variant = iota
	Shark
)

var Variants = []Variant{Default, Shark}

func (v Variant) String() string {
	switch v {
	case Default:
		return "default"
	case Shark:
		return "shark"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return Default, nil
	case "shark":
		return Shark, nil
	}
	return 0, fmt.Errorf("unknown agent variant %q", s)
}

// TablePath is the file holding the Q-table of one (side, variant) pair.
func TablePath(dir string, side game.Player, v Variant) string {
	name := "q_table_" + strings.ToLower(side.String()) + ".json"
	if v == Shark {
		name = "q_table_shark_" + strings.ToLower(side.String()) + ".json"
	}
	return filepath.Join(dir, name)
}
