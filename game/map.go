package game

import (
	"errors"
	"fmt"

	"blackwhite/utils"
)

// Node is one of the nine fixed positions: eight rim nodes and the center hub.
type Node uint8

const (
	N1 Node = iota
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	Center
	NumNodes = 9
)

var ErrUnknownNode = errors.New("unknown node")

// Labels in the fixed serialization order of the state key
var nodeLabels = []string{"1", "2", "3", "4", "5", "6", "7", "8", "C"}

// Adjacency: each rim node touches the center and its two rim neighbours,
// the center touches every rim node.
var adjacency = [NumNodes][]Node{
	N1:     {Center, N2, N8},
	N2:     {Center, N1, N3},
	N3:     {Center, N2, N4},
	N4:     {Center, N3, N5},
	N5:     {Center, N4, N6},
	N6:     {Center, N5, N7},
	N7:     {Center, N6, N8},
	N8:     {Center, N7, N1},
	Center: {N1, N2, N3, N4, N5, N6, N7, N8},
}

// Every winning line passes through the center and two opposite rim nodes.
var winningLines = [...][3]Node{
	{N1, Center, N5},
	{N2, Center, N6},
	{N3, Center, N7},
	{N8, Center, N4},
}

// Nodes returns all nodes in serialization order.
func Nodes() []Node {
	nodes := make([]Node, NumNodes)
	for i := range nodes {
		nodes[i] = Node(i)
	}
	return nodes
}

// Neighbors returns the nodes reachable from n in one move. The returned
// slice is shared and must not be modified.
func Neighbors(n Node) []Node {
	return adjacency[n.checked()]
}

// AreAdjacent checks if two nodes are directly connected.
func AreAdjacent(a, b Node) bool {
	for _, adj := range Neighbors(a) {
		if adj == b {
			return true
		}
	}
	return false
}

// WinningLines returns a copy of the winning lines.
func WinningLines() [][3]Node {
	lines := make([][3]Node, len(winningLines))
	copy(lines, winningLines[:])
	return lines
}

func (n Node) checked() Node {
	if n >= NumNodes {
		panic(fmt.Sprintf("node index %d out of range", n))
	}
	return n
}

func (n Node) String() string {
	if n >= NumNodes {
		return "?"
	}
	return nodeLabels[n]
}

func (n Node) MarshalText() ([]byte, error) {
	if n >= NumNodes {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownNode, n)
	}
	return []byte(nodeLabels[n]), nil
}

func (n *Node) UnmarshalText(text []byte) error {
	parsed, err := ParseNode(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ParseNode maps a label ("1".."8", "C" or "c") to its node.
func ParseNode(label string) (Node, error) {
	if label == "c" {
		label = "C"
	}
	i := utils.FindIndex(nodeLabels, label)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, label)
	}
	return Node(i), nil
}
