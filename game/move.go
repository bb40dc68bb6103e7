package game

import (
	"fmt"
	"strings"
)

// Move relocates one token from an occupied node to an adjacent empty node.
type Move struct {
	From Node `json:"from"`
	To   Node `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// ParseMove reads "1 C", "1-C" or "1C".
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	var parts []string
	switch {
	case strings.ContainsAny(s, " -"):
		parts = strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' })
	case len(s) == 2:
		parts = []string{s[:1], s[1:]}
	}
	if len(parts) != 2 {
		return Move{}, fmt.Errorf("malformed move %q", s)
	}
	from, err := ParseNode(parts[0])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseNode(parts[1])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}
