package agent

import (
	"fmt"
	"slices"

	"blackwhite/game"
	"blackwhite/learner"
	"blackwhite/qtable"
)

// TableAgent learns with its own Q-table persisted under a per (side,
// variant) file.
type TableAgent struct {
	side    game.Player
	variant Variant
	path    string
	options []learner.Option
	learner *learner.Learner
}

// NewTableAgent loads the agent's table from dir. A missing table starts
// empty, a corrupt one is an error.
func NewTableAgent(dir string, side game.Player, v Variant, options ...learner.Option) (*TableAgent, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("invalid side %d", side)
	}
	a := &TableAgent{
		side:    side,
		variant: v,
		path:    TablePath(dir, side, v),
		options: append(slices.Clone(options), learner.WithShaper(shaperFor(v))),
	}
	if err := a.Load(); err != nil {
		return nil, err
	}
	return a, nil
}

func shaperFor(v Variant) learner.Shaper {
	if v == Shark {
		return learner.Shark{}
	}
	return learner.Default{}
}

func (a *TableAgent) Side() game.Player         { return a.side }
func (a *TableAgent) Variant() Variant          { return a.variant }
func (a *TableAgent) Path() string              { return a.path }
func (a *TableAgent) Learner() *learner.Learner { return a.learner }

func (a *TableAgent) SelectMove(b game.Board, p game.Player) (game.Move, bool, error) {
	m, ok := a.learner.SelectMove(b, p)
	return m, ok, nil
}

func (a *TableAgent) RecordOutcome(before game.Board, m game.Move, reward float64, after game.Board) error {
	a.Train(before, m, reward, after)
	return nil
}

// Train records the move for this agent's side and returns the reward that
// was applied after shaping and the updated estimate.
func (a *TableAgent) Train(before game.Board, m game.Move, reward float64, after game.Board) (applied, value float64) {
	return a.learner.Record(a.side, before, m, reward, after)
}

// Inspect returns a bounded view of the agent's table.
func (a *TableAgent) Inspect(limit int) qtable.Inspection {
	return a.learner.Table().Inspect(limit)
}

func (a *TableAgent) Save() error {
	if err := a.learner.Table().Save(a.path); err != nil {
		return fmt.Errorf("%s %s agent: %w", a.side.Name(), a.variant, err)
	}
	return nil
}

// Load replaces the in-memory table with the persisted one.
func (a *TableAgent) Load() error {
	table, err := qtable.Load(a.path)
	if err != nil {
		return fmt.Errorf("%s %s agent: %w", a.side.Name(), a.variant, err)
	}
	a.learner = learner.New(table, a.options...)
	return nil
}
