package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"blackwhite/engine"
	"blackwhite/game"
)

// Player is a human seat reading one command per line:
//
//	1 C   move the token on 1 to C (also "1-C" or "1C")
//	u     undo the last move
//	r     reset to the initial setup
//	q     quit the game
//
// End of input quits.
type Player struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPlayer(in io.Reader, out io.Writer) *Player {
	return &Player{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (p *Player) Choose(ctx context.Context, gs *game.GameState) (engine.Choice, error) {
	fmt.Fprintln(p.out, Render(gs.Board()))
	legal := gs.LegalMoves()
	for {
		if err := ctx.Err(); err != nil {
			return engine.Choice{}, err
		}
		fmt.Fprintf(p.out, "%s to move> ", gs.Player().Name())
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return engine.Choice{}, fmt.Errorf("failed to read command: %w", err)
			}
			return engine.Choice{Action: engine.Quit}, nil
		}

		line := strings.TrimSpace(p.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "u", "undo":
			return engine.Choice{Action: engine.Undo}, nil
		case "r", "reset":
			return engine.Choice{Action: engine.Reset}, nil
		case "q", "quit":
			return engine.Choice{Action: engine.Quit}, nil
		}

		m, err := game.ParseMove(line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		if !slices.Contains(legal, m) {
			fmt.Fprintf(p.out, "%s is not a legal move, try one of %v\n", m, legal)
			continue
		}
		return engine.Choice{Action: engine.Play, Move: m}, nil
	}
}

// Render draws the board with the rim around the center:
//
//	1 - 2 - 3
//	| \ | / |
//	8 - C - 4
//	| / | \ |
//	7 - 6 - 5
func Render(b game.Board) string {
	cell := func(n game.Node) string {
		switch {
		case b.Owns(n, game.Black):
			return "B"
		case b.Owns(n, game.White):
			return "W"
		}
		return "."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %s - %s\n", cell(game.N1), cell(game.N2), cell(game.N3))
	sb.WriteString("| \\ | / |\n")
	fmt.Fprintf(&sb, "%s - %s - %s\n", cell(game.N8), cell(game.Center), cell(game.N4))
	sb.WriteString("| / | \\ |\n")
	fmt.Fprintf(&sb, "%s - %s - %s", cell(game.N7), cell(game.N6), cell(game.N5))
	return sb.String()
}
