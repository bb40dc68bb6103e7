package game

import "fmt"

// Player identifies a side. Sides strictly alternate after every completed move.
type Player uint8

const (
	Black Player = 'B'
	White Player = 'W'
)

// Occupant is the content of a node: Empty or one of the players' tokens.
type Occupant uint8

const Empty Occupant = 0

const TokensPerSide = 3

func (p Player) Valid() bool {
	return p == Black || p == White
}

// Opponent returns the other side. It panics on an invalid player.
func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	panic(fmt.Sprintf("invalid player %d", p))
}

// Occupant returns the token this player places on the board.
func (p Player) Occupant() Occupant {
	return Occupant(p)
}

func (p Player) String() string {
	if !p.Valid() {
		return "?"
	}
	return string(rune(p))
}

func (p Player) Name() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Nobody"
}

func (p Player) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid player %d", p)
	}
	return []byte{byte(p)}, nil
}

func (p *Player) UnmarshalText(text []byte) error {
	parsed, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePlayer accepts "B"/"W" in either case.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "B", "b":
		return Black, nil
	case "W", "w":
		return White, nil
	}
	return 0, fmt.Errorf("unknown player %q", s)
}

func (o Occupant) char() byte {
	if o == Empty {
		return '.'
	}
	return byte(o)
}

func occupantFromChar(c byte) (Occupant, bool) {
	switch c {
	case '.':
		return Empty, true
	case byte(Black):
		return Black.Occupant(), true
	case byte(White):
		return White.Occupant(), true
	}
	return Empty, false
}
