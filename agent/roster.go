package agent

import (
	"errors"

	"blackwhite/game"
	"blackwhite/learner"
)

type seat struct {
	side    game.Player
	variant Variant
}

// Roster holds one agent per (side, variant). Their tables are disjoint and
// are always flushed together.
type Roster struct {
	dir    string
	agents map[seat]*TableAgent
}

// LoadRoster creates all four agents from the tables in dir.
func LoadRoster(dir string, options ...learner.Option) (*Roster, error) {
	r := &Roster{dir: dir, agents: make(map[seat]*TableAgent)}
	for _, side := range []game.Player{game.Black, game.White} {
		for _, v := range Variants {
			a, err := NewTableAgent(dir, side, v, options...)
			if err != nil {
				return nil, err
			}
			r.agents[seat{side, v}] = a
		}
	}
	return r, nil
}

func (r *Roster) Dir() string { return r.dir }

// Get returns the agent for a side and variant, or nil if either is invalid.
func (r *Roster) Get(side game.Player, v Variant) *TableAgent {
	return r.agents[seat{side, v}]
}

// All returns the agents in a fixed order: Black then White, default then shark.
func (r *Roster) All() []*TableAgent {
	var all []*TableAgent
	for _, side := range []game.Player{game.Black, game.White} {
		for _, v := range Variants {
			all = append(all, r.agents[seat{side, v}])
		}
	}
	return all
}

// SaveAll flushes every table, attempting all of them even if one fails.
func (r *Roster) SaveAll() error {
	var errs []error
	for _, a := range r.All() {
		errs = append(errs, a.Save())
	}
	return errors.Join(errs...)
}
