package learner

import (
	"testing"

	"blackwhite/game"
	"blackwhite/meta"
	"blackwhite/qtable"

	"github.com/stretchr/testify/require"
)

func TestDefaultShaper(t *testing.T) {
	after := board(t, ".BB..WWWB")
	for _, r := range []float64{meta.WIN_REWARD, meta.STALEMATE_REWARD, meta.NO_REWARD} {
		require.Equal(t, r, Default{}.Shape(after, game.Black, r))
	}
}

func TestSharkShaper(t *testing.T) {
	// Black steps 6-5 and leaves White the 7-6 reply completing 2-C-6
	threatBefore := board(t, ".WBB.BW.W")
	threatMove := game.Move{From: game.N6, To: game.N5}
	threatAfter := game.Apply(threatBefore, threatMove, game.Black)
	require.True(t, game.CanWinNext(threatAfter, game.White))

	// Black completes 1-C-5 with the center, White cannot reply with a win
	winBefore := board(t, "B.BWBW.W.")
	winMove := game.Move{From: game.N3, To: game.Center}
	winAfter := game.Apply(winBefore, winMove, game.Black)
	require.True(t, game.IsWinning(winAfter, game.Black))

	t.Run("threat overrides any reward", func(t *testing.T) {
		for _, r := range []float64{meta.NO_REWARD, meta.WIN_REWARD, meta.STALEMATE_REWARD} {
			require.Equal(t, meta.SHARK_THREAT_REWARD, Shark{}.Shape(threatAfter, game.Black, r))
		}
	})

	t.Run("win without threat is amplified", func(t *testing.T) {
		require.Equal(t, meta.SHARK_WIN_REWARD, Shark{}.Shape(winAfter, game.Black, meta.WIN_REWARD))
	})

	t.Run("other rewards pass through", func(t *testing.T) {
		require.Equal(t, meta.NO_REWARD, Shark{}.Shape(winAfter, game.Black, meta.NO_REWARD))
		require.Equal(t, meta.STALEMATE_REWARD, Shark{}.Shape(winAfter, game.Black, meta.STALEMATE_REWARD))
	})

	t.Run("lookahead leaves the board untouched", func(t *testing.T) {
		b := threatAfter
		Shark{}.Shape(b, game.Black, 0)
		require.Equal(t, threatAfter, b)
	})

	t.Run("record applies the shaped reward", func(t *testing.T) {
		table := qtable.New()
		l := New(table, WithShaper(Shark{}), WithRand(seeded()), WithMetrics())

		applied, value := l.Record(game.Black, threatBefore, threatMove, meta.NO_REWARD, threatAfter)
		require.Equal(t, meta.SHARK_THREAT_REWARD, applied)
		require.InDelta(t, meta.LEARNING_RATE*meta.SHARK_THREAT_REWARD, value, 1e-12)

		applied, value = l.Record(game.Black, winBefore, winMove, meta.WIN_REWARD, winAfter)
		require.Equal(t, meta.SHARK_WIN_REWARD, applied)
		require.InDelta(t, meta.LEARNING_RATE*meta.SHARK_WIN_REWARD, value, 1e-12)

		require.Equal(t, int64(2), l.Metrics().ShapedRewards)
		require.Equal(t, int64(2), l.Metrics().Updates)
	})
}
