package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjacency(t *testing.T) {
	t.Run("adjacency is symmetric", func(t *testing.T) {
		for _, a := range Nodes() {
			for _, b := range Neighbors(a) {
				require.True(t, AreAdjacent(b, a), "%s-%s should be adjacent both ways", a, b)
			}
		}
	})

	t.Run("center touches every rim node", func(t *testing.T) {
		require.Len(t, Neighbors(Center), 8)
		for _, n := range Nodes()[:8] {
			require.Len(t, Neighbors(n), 3, "rim node %s", n)
			require.True(t, AreAdjacent(n, Center))
		}
	})

	t.Run("opposite rim nodes are not adjacent", func(t *testing.T) {
		require.False(t, AreAdjacent(N1, N5))
		require.False(t, AreAdjacent(N2, N6))
	})
}

func TestWinningLines(t *testing.T) {
	lines := WinningLines()
	require.Len(t, lines, 4)
	for _, line := range lines {
		require.Equal(t, Center, line[1], "every line passes through the center")
		require.Equal(t, (line[0]+4)%8, line[2], "rim ends are diametrically opposed")
	}

	lines[0][0] = N2
	require.Equal(t, N1, WinningLines()[0][0], "callers get a copy")
}

func TestParseNode(t *testing.T) {
	for i, label := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "C"} {
		n, err := ParseNode(label)
		require.NoError(t, err)
		require.Equal(t, Node(i), n)
		require.Equal(t, label, n.String())
	}

	n, err := ParseNode("c")
	require.NoError(t, err)
	require.Equal(t, Center, n)

	_, err = ParseNode("9")
	require.ErrorIs(t, err, ErrUnknownNode)
}
