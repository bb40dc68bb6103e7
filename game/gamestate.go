package game

import (
	"errors"
	"fmt"
	"slices"
)

var ErrNothingToUndo = errors.New("nothing to undo")

type Status int

const (
	InProgress Status = iota
	Won
	Stalemate
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Stalemate:
		return "stalemate"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome describes one applied move.
type Outcome struct {
	Player Player // The mover
	Move   Move
	Before Board
	After  Board
	Won    bool
}

type snapshot struct {
	board  Board
	player Player
	winner Player
}

// GameState is the mutable game: the live board, the player to move and an
// undo history. Everything that changes during a game lives here, the graph
// is static.
type GameState struct {
	setup   Setup
	board   Board
	player  Player
	winner  Player // 0 while nobody has won
	history []snapshot
}

// New starts a game from a validated setup.
func New(setup Setup) *GameState {
	if !setup.First.Valid() {
		panic("setup has no valid first player")
	}
	return &GameState{
		setup:  setup,
		board:  setup.Board,
		player: setup.First,
	}
}

// Copy returns an independent copy, history included.
func (gs *GameState) Copy() *GameState {
	return &GameState{
		setup:   gs.setup,
		board:   gs.board,
		player:  gs.player,
		winner:  gs.winner,
		history: slices.Clone(gs.history),
	}
}

func (gs *GameState) Board() Board   { return gs.board }
func (gs *GameState) Player() Player { return gs.player }
func (gs *GameState) Setup() Setup   { return gs.setup }

// Moves returns the number of moves on the undo history.
func (gs *GameState) Moves() int { return len(gs.history) }

// Winner returns the winning side, if any.
func (gs *GameState) Winner() (Player, bool) {
	return gs.winner, gs.winner != 0
}

// LegalMoves returns the moves available to the player to move. It is empty
// once the game is won.
func (gs *GameState) LegalMoves() []Move {
	if gs.winner != 0 {
		return []Move{}
	}
	return LegalMoves(gs.board, gs.player)
}

// IsWinningMove reports whether m would win for the player to move, checked
// on a copy of the live board.
func (gs *GameState) IsWinningMove(m Move) bool {
	return IsWinningMove(gs.board, m, gs.player)
}

func (gs *GameState) Status() Status {
	switch {
	case gs.winner != 0:
		return Won
	case len(LegalMoves(gs.board, gs.player)) == 0:
		return Stalemate
	}
	return InProgress
}

// Play applies m for the player to move. The prior board and player are
// pushed on the history first. If the move completes a line the mover wins
// and keeps the turn, otherwise the turn passes to the opponent. Playing a
// move that is not legal panics.
func (gs *GameState) Play(m Move) Outcome {
	if gs.winner != 0 {
		panic(fmt.Sprintf("move %s played after %s won", m, gs.winner))
	}
	if !slices.Contains(LegalMoves(gs.board, gs.player), m) {
		panic(fmt.Sprintf("illegal move %s for %s on %s", m, gs.player, gs.board))
	}

	before := gs.board
	gs.history = append(gs.history, snapshot{board: before, player: gs.player, winner: gs.winner})
	gs.board = Apply(before, m, gs.player)

	out := Outcome{Player: gs.player, Move: m, Before: before, After: gs.board}
	if IsWinning(gs.board, gs.player) {
		gs.winner = gs.player
		out.Won = true
		return out
	}
	gs.player = gs.player.Opponent()
	return out
}

// Undo restores the board and player from before the last move.
func (gs *GameState) Undo() error {
	if len(gs.history) == 0 {
		return ErrNothingToUndo
	}
	last := gs.history[len(gs.history)-1]
	gs.history = gs.history[:len(gs.history)-1]
	gs.board = last.board
	gs.player = last.player
	gs.winner = last.winner
	return nil
}

// Reset returns to the initial setup and clears the history.
func (gs *GameState) Reset() {
	gs.board = gs.setup.Board
	gs.player = gs.setup.First
	gs.winner = 0
	gs.history = nil
}
