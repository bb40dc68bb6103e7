package agent

import (
	"os"
	"path/filepath"
	"testing"

	"blackwhite/game"
	"blackwhite/learner"
	"blackwhite/meta"
	"blackwhite/qtable"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func board(t *testing.T, s string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func seeded() learner.Option {
	return learner.WithRand(rand.New(rand.NewSource(7)))
}

func TestTablePath(t *testing.T) {
	require.Equal(t, filepath.Join("d", "q_table_b.json"), TablePath("d", game.Black, Default))
	require.Equal(t, filepath.Join("d", "q_table_w.json"), TablePath("d", game.White, Default))
	require.Equal(t, filepath.Join("d", "q_table_shark_b.json"), TablePath("d", game.Black, Shark))
	require.Equal(t, filepath.Join("d", "q_table_shark_w.json"), TablePath("d", game.White, Shark))
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("Shark")
	require.NoError(t, err)
	require.Equal(t, Shark, v)
	_, err = ParseVariant("whale")
	require.Error(t, err)
}

func TestTableAgent(t *testing.T) {
	before := board(t, "BBB..WWW.")
	move := game.Move{From: game.N1, To: game.Center}
	after := game.Apply(before, move, game.Black)

	t.Run("trains for its own side and persists", func(t *testing.T) {
		dir := t.TempDir()
		a, err := NewTableAgent(dir, game.Black, Default, seeded())
		require.NoError(t, err)
		require.NoError(t, a.RecordOutcome(before, move, meta.WIN_REWARD, after))
		require.NoError(t, a.Save())

		reloaded, err := NewTableAgent(dir, game.Black, Default, seeded())
		require.NoError(t, err)
		require.InDelta(t, meta.LEARNING_RATE, reloaded.Learner().Value(before, game.Black, move), 1e-12)
	})

	t.Run("load discards unsaved training", func(t *testing.T) {
		a, err := NewTableAgent(t.TempDir(), game.White, Default, seeded())
		require.NoError(t, err)
		a.Train(before, move, 1, after)
		require.Equal(t, 1, a.Learner().Table().Len())
		require.NoError(t, a.Load())
		require.Zero(t, a.Learner().Table().Len())
	})

	t.Run("shark variant shapes rewards", func(t *testing.T) {
		a, err := NewTableAgent(t.TempDir(), game.Black, Shark, seeded())
		require.NoError(t, err)
		threatBefore := board(t, ".WBB.BW.W")
		threatMove := game.Move{From: game.N6, To: game.N5}
		applied, _ := a.Train(threatBefore, threatMove, 0, game.Apply(threatBefore, threatMove, game.Black))
		require.Equal(t, meta.SHARK_THREAT_REWARD, applied)
	})

	t.Run("corrupt table aborts construction", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(TablePath(dir, game.Black, Shark), []byte("{"), 0644))
		_, err := NewTableAgent(dir, game.Black, Shark)
		require.ErrorIs(t, err, qtable.ErrCorrupt)
	})

	t.Run("selects nothing when blocked", func(t *testing.T) {
		a, err := NewTableAgent(t.TempDir(), game.Black, Default, seeded())
		require.NoError(t, err)
		_, ok, err := a.SelectMove(board(t, "WBBBW...W"), game.Black)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestRoster(t *testing.T) {
	dir := t.TempDir()
	r, err := LoadRoster(dir, seeded())
	require.NoError(t, err)
	require.Len(t, r.All(), 4)

	blackShark := r.Get(game.Black, Shark)
	require.Equal(t, game.Black, blackShark.Side())
	require.Equal(t, Shark, blackShark.Variant())
	require.IsType(t, learner.Shark{}, blackShark.Learner().Shaper())
	require.IsType(t, learner.Default{}, r.Get(game.Black, Default).Learner().Shaper(),
		"variants must not share options")

	before := board(t, "BBB..WWW.")
	move := game.Move{From: game.N1, To: game.Center}
	r.Get(game.Black, Default).Train(before, move, 1, game.Apply(before, move, game.Black))
	require.Zero(t, blackShark.Learner().Table().Len(), "tables are disjoint")

	require.NoError(t, r.SaveAll())
	for _, a := range r.All() {
		_, err := os.Stat(a.Path())
		require.NoError(t, err)
	}

	reloaded, err := LoadRoster(dir)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Get(game.Black, Default).Learner().Table().Len())
	require.Zero(t, reloaded.Get(game.White, Default).Learner().Table().Len())
}
