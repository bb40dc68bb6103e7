package qtable

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"blackwhite/game"

	"github.com/stretchr/testify/require"
)

func startKey(t *testing.T) game.StateKey {
	t.Helper()
	setup, err := game.ParseSetup("1 2 3", "6 7 8", "B")
	require.NoError(t, err)
	return game.KeyOf(setup.Board, setup.First)
}

func TestTableGetSet(t *testing.T) {
	key := startKey(t)
	move := game.Move{From: game.N1, To: game.Center}

	t.Run("missing entries read as zero without being created", func(t *testing.T) {
		table := New()
		require.Equal(t, 0.0, table.Get(key, move))
		_, ok := table.Lookup(key, move)
		require.False(t, ok)
		require.Zero(t, table.Len(), "reads must not create entries")
	})

	t.Run("set upserts", func(t *testing.T) {
		table := New()
		table.Set(key, move, 0.5)
		table.Set(key, move, 0.25)
		require.Equal(t, 0.25, table.Get(key, move))
		require.Equal(t, 1, table.Len())
	})

	t.Run("player to move separates entries", func(t *testing.T) {
		table := New()
		table.Set(key, move, 1)
		other := game.KeyOf(key.Board, game.White)
		require.Equal(t, 0.0, table.Get(other, move))
	})
}

func TestStoreRoundTrip(t *testing.T) {
	key := startKey(t)
	values := map[game.Move]float64{
		{From: game.N1, To: game.Center}: 0.1 + 0.2,
		{From: game.N2, To: game.Center}: -1.0 / 3.0,
		{From: game.N3, To: game.Center}: 1e-300,
		{From: game.N3, To: game.N4}:     math.Nextafter(2, 3),
	}
	table := New()
	for m, v := range values {
		table.Set(key, m, v)
	}
	table.Set(game.KeyOf(key.Board, game.White), game.Move{From: game.N6, To: game.N5}, -0.1)

	path := filepath.Join(t.TempDir(), "q_table_b.json")
	require.NoError(t, table.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, table.Len(), loaded.Len())
	for m, v := range values {
		got := loaded.Get(key, m)
		require.Equal(t, math.Float64bits(v), math.Float64bits(got), "value for %s must be bit-identical", m)
	}
	require.Equal(t, table.Records(), loaded.Records())
}

func TestStoreSave(t *testing.T) {
	key := startKey(t)
	move := game.Move{From: game.N1, To: game.Center}

	t.Run("repeated saves overwrite and leave no temporary files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "q_table_w.json")
		table := New()
		table.Set(key, move, 1)
		require.NoError(t, table.Save(path))
		table.Set(key, move, 2)
		require.NoError(t, table.Save(path))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		loaded, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 2.0, loaded.Get(key, move))
	})

	t.Run("creates the directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tables", "q_table_b.json")
		require.NoError(t, New().Save(path))
		_, err := os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("separate files stay independent", func(t *testing.T) {
		dir := t.TempDir()
		a, b := New(), New()
		a.Set(key, move, 1)
		require.NoError(t, a.Save(filepath.Join(dir, "q_table_b.json")))
		require.NoError(t, b.Save(filepath.Join(dir, "q_table_shark_b.json")))

		loaded, err := Load(filepath.Join(dir, "q_table_shark_b.json"))
		require.NoError(t, err)
		require.Zero(t, loaded.Len())
	})
}

func TestStoreLoad(t *testing.T) {
	t.Run("missing file gives an empty table", func(t *testing.T) {
		table, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		require.Zero(t, table.Len())
	})

	for name, content := range map[string]string{
		"truncated":       `{"version":1,"entries":[{"state":`,
		"not json":        "garbage",
		"bad board":       `{"version":1,"entries":[{"state":{"board":"XXX","to_move":"B"},"move":{"from":"1","to":"C"},"value":1}]}`,
		"bad node":        `{"version":1,"entries":[{"state":{"board":"BBB..WWW.","to_move":"B"},"move":{"from":"9","to":"C"},"value":1}]}`,
		"missing player":  `{"version":1,"entries":[{"state":{"board":"BBB..WWW."},"move":{"from":"1","to":"C"},"value":1}]}`,
		"unknown version": `{"version":7,"entries":[]}`,
	} {
		t.Run("corrupt data: "+name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "q.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path)
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestInspect(t *testing.T) {
	key := startKey(t)
	table := New()
	table.Set(key, game.Move{From: game.N3, To: game.N4}, 0.3)
	table.Set(key, game.Move{From: game.N1, To: game.Center}, 0.1)
	table.Set(key, game.Move{From: game.N2, To: game.Center}, 0.2)

	first := table.Inspect(2)
	require.Equal(t, 3, first.Total)
	require.Len(t, first.Entries, 2)
	require.Equal(t, game.Move{From: game.N1, To: game.Center}, first.Entries[0].Move)
	require.Equal(t, game.Move{From: game.N2, To: game.Center}, first.Entries[1].Move)
	require.Zero(t, first.AverageChange, "nothing to compare against yet")

	table.Set(key, game.Move{From: game.N1, To: game.Center}, 0.5)
	second := table.Inspect(10)
	require.Len(t, second.Entries, 3)
	require.InDelta(t, 0.2, second.AverageChange, 1e-12, "(0.4 + 0) / 2 entries seen before")
}
