package game

// StateKey is the exact identity of a (board, player to move) pair. It is
// comparable, so it can key maps directly without hashing.
type StateKey struct {
	Board  Board  `json:"board"`
	ToMove Player `json:"to_move"`
}

// KeyOf derives the state key for b with p to move.
func KeyOf(b Board, p Player) StateKey {
	return StateKey{Board: b, ToMove: p}
}

func (k StateKey) String() string {
	return k.Board.String() + "|" + k.ToMove.String()
}
