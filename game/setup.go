package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSetup = errors.New("invalid setup")

// Setup is a validated starting position: three tokens per side on six
// distinct nodes, plus the side that moves first.
type Setup struct {
	Board Board
	First Player
}

// NewSetup places black and white tokens and validates the result.
func NewSetup(black, white []Node, first Player) (Setup, error) {
	if len(black) != TokensPerSide || len(white) != TokensPerSide {
		return Setup{}, fmt.Errorf("%w: each side needs %d tokens, got %d and %d", ErrInvalidSetup, TokensPerSide, len(black), len(white))
	}
	if !first.Valid() {
		return Setup{}, fmt.Errorf("%w: first player must be B or W", ErrInvalidSetup)
	}
	var b Board
	place := func(nodes []Node, p Player) error {
		for _, n := range nodes {
			if n >= NumNodes {
				return fmt.Errorf("%w: %w: index %d", ErrInvalidSetup, ErrUnknownNode, n)
			}
			if b[n] != Empty {
				return fmt.Errorf("%w: node %s used twice", ErrInvalidSetup, n)
			}
			b[n] = p.Occupant()
		}
		return nil
	}
	if err := place(black, Black); err != nil {
		return Setup{}, err
	}
	if err := place(white, White); err != nil {
		return Setup{}, err
	}
	return Setup{Board: b, First: first}, nil
}

// ParseSetup reads whitespace separated node labels for each side, e.g.
// "C 3 5" and "2 4 7", and the first player "B" or "W".
func ParseSetup(black, white, first string) (Setup, error) {
	blackNodes, err := parseNodes(black)
	if err != nil {
		return Setup{}, err
	}
	whiteNodes, err := parseNodes(white)
	if err != nil {
		return Setup{}, err
	}
	firstPlayer, err := ParsePlayer(strings.TrimSpace(first))
	if err != nil {
		return Setup{}, fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	return NewSetup(blackNodes, whiteNodes, firstPlayer)
}

func parseNodes(s string) ([]Node, error) {
	fields := strings.Fields(s)
	nodes := make([]Node, 0, len(fields))
	for _, f := range fields {
		n, err := ParseNode(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSetup, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
