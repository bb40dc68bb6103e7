package game

// WinningMoves returns the legal moves of p from b that complete a winning
// line. b is never modified.
func WinningMoves(b Board, p Player) []Move {
	var winning []Move
	for _, m := range LegalMoves(b, p) {
		if IsWinningMove(b, m, p) {
			winning = append(winning, m)
		}
	}
	return winning
}

// CanWinNext reports whether p has any single move from b that completes one
// of its winning lines.
func CanWinNext(b Board, p Player) bool {
	for _, m := range LegalMoves(b, p) {
		if IsWinningMove(b, m, p) {
			return true
		}
	}
	return false
}
