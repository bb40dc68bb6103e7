package qtable

import (
	"cmp"
	"slices"

	"blackwhite/game"
)

// Entry is the (state, action) key of a Q-value.
type Entry struct {
	State game.StateKey
	Move  game.Move
}

// Record is one persisted or inspected Q-value.
type Record struct {
	State game.StateKey `json:"state"`
	Move  game.Move     `json:"move"`
	Value float64       `json:"value"`
}

// Table maps (state, move) pairs to value estimates. Absent entries read as
// 0.0 and reading never creates an entry. A Table is not safe for
// concurrent use.
type Table struct {
	values   map[Entry]float64
	previous map[Entry]float64 // Values as of the last Inspect
}

func New() *Table {
	return &Table{
		values:   make(map[Entry]float64),
		previous: make(map[Entry]float64),
	}
}

// Get returns the stored value, or 0.0 for an unvisited pair.
func (t *Table) Get(state game.StateKey, move game.Move) float64 {
	return t.values[Entry{State: state, Move: move}]
}

// Lookup is Get with a presence flag.
func (t *Table) Lookup(state game.StateKey, move game.Move) (float64, bool) {
	v, ok := t.values[Entry{State: state, Move: move}]
	return v, ok
}

// Set inserts or overwrites a value.
func (t *Table) Set(state game.StateKey, move game.Move, value float64) {
	t.values[Entry{State: state, Move: move}] = value
}

func (t *Table) Len() int {
	return len(t.values)
}

// Records returns every entry in a stable order: by state key, then move.
func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.values))
	for e, v := range t.values {
		records = append(records, Record{State: e.State, Move: e.Move, Value: v})
	}
	slices.SortFunc(records, compareRecords)
	return records
}

func compareRecords(a, b Record) int {
	if c := cmp.Compare(a.State.String(), b.State.String()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Move.From, b.Move.From); c != 0 {
		return c
	}
	return cmp.Compare(a.Move.To, b.Move.To)
}
