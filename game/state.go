package game

import (
	"fmt"
	"strings"
)

// Board maps every node to its occupant. It is a value type: assigning or
// passing a Board copies it, so snapshots never alias the live board.
type Board [NumNodes]Occupant

// At returns the occupant of n.
func (b Board) At(n Node) Occupant {
	return b[n.checked()]
}

// Owns reports whether p has a token on n.
func (b Board) Owns(n Node, p Player) bool {
	return b.At(n) == p.Occupant()
}

func (b Board) IsEmpty(n Node) bool {
	return b.At(n) == Empty
}

// Count returns the number of tokens p has on the board.
func (b Board) Count(p Player) int {
	count := 0
	for _, o := range b {
		if o == p.Occupant() {
			count++
		}
	}
	return count
}

// Positions returns the nodes occupied by p in node order.
func (b Board) Positions(p Player) []Node {
	nodes := make([]Node, 0, TokensPerSide)
	for i, o := range b {
		if o == p.Occupant() {
			nodes = append(nodes, Node(i))
		}
	}
	return nodes
}

// String renders the board as nine characters in node order, '.' for empty.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(NumNodes)
	for _, o := range b {
		sb.WriteByte(o.char())
	}
	return sb.String()
}

func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := ParseBoard(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBoard is the inverse of Board.String.
func ParseBoard(s string) (Board, error) {
	var b Board
	if len(s) != NumNodes {
		return b, fmt.Errorf("board %q: want %d cells, got %d", s, NumNodes, len(s))
	}
	for i := 0; i < NumNodes; i++ {
		o, ok := occupantFromChar(s[i])
		if !ok {
			return b, fmt.Errorf("board %q: unknown occupant %q at node %s", s, s[i], Node(i))
		}
		b[i] = o
	}
	return b, nil
}

// LegalMoves returns every move of p onto an adjacent empty node, ordered by
// source node and then by the source's adjacency list.
func LegalMoves(b Board, p Player) []Move {
	moves := []Move{}
	for i, o := range b {
		if o != p.Occupant() {
			continue
		}
		from := Node(i)
		for _, to := range adjacency[from] {
			if b[to] == Empty {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// IsWinning reports whether p fully occupies at least one winning line.
func IsWinning(b Board, p Player) bool {
	for _, line := range winningLines {
		if b[line[0]] == p.Occupant() && b[line[1]] == p.Occupant() && b[line[2]] == p.Occupant() {
			return true
		}
	}
	return false
}

// Apply returns a copy of b with m played by p. The input board is not
// modified. Applying an illegal move is a programming error and panics.
func Apply(b Board, m Move, p Player) Board {
	if !b.Owns(m.From, p) {
		panic(fmt.Sprintf("illegal move %s: %s has no token on %s", m, p, m.From))
	}
	if !b.IsEmpty(m.To) {
		panic(fmt.Sprintf("illegal move %s: %s is occupied", m, m.To))
	}
	if !AreAdjacent(m.From, m.To) {
		panic(fmt.Sprintf("illegal move %s: nodes are not adjacent", m))
	}
	b[m.From] = Empty
	b[m.To] = p.Occupant()
	return b
}

// IsWinningMove reports whether playing m would complete a line for p,
// evaluated on a copy of b.
func IsWinningMove(b Board, m Move, p Player) bool {
	return IsWinning(Apply(b, m, p), p)
}
