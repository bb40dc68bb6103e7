package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blackwhite/game"
	"blackwhite/meta"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Roster, *httptest.Server) {
	t.Helper()
	roster, err := LoadRoster(t.TempDir(), seeded())
	require.NoError(t, err)
	srv := httptest.NewServer(NewServer(roster))
	t.Cleanup(srv.Close)
	return roster, srv
}

func TestServerMove(t *testing.T) {
	_, srv := newTestServer(t)

	t.Run("returns a legal move", func(t *testing.T) {
		body := `{"board":"BBB..WWW.","player":"B"}`
		resp, err := http.Post(srv.URL+"/agents/default/b/move", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out MoveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Contains(t, game.LegalMoves(board(t, "BBB..WWW."), game.Black), out.Move)
	})

	t.Run("no content when blocked", func(t *testing.T) {
		body := `{"board":"WBBBW...W","player":"B"}`
		resp, err := http.Post(srv.URL+"/agents/shark/b/move", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for path, body := range map[string]string{
			"/agents/default/b/move": `{"board":"nope","player":"B"}`,
			"/agents/default/w/move": `{"board":"BBB..WWW."}`,
		} {
			resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		}
	})

	t.Run("unknown agents are not found", func(t *testing.T) {
		for _, path := range []string{"/agents/whale/b/move", "/agents/default/x/move"} {
			resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(`{}`))
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		}
	})
}

func TestServerOutcome(t *testing.T) {
	roster, srv := newTestServer(t)

	t.Run("trains and reports the applied reward", func(t *testing.T) {
		body := `{"before":"BBB..WWW.","move":{"from":"1","to":"C"},"reward":1,"after":".BB..WWWB"}`
		resp, err := http.Post(srv.URL+"/agents/shark/b/outcome", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out OutcomeResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Equal(t, meta.SHARK_WIN_REWARD, out.Applied)
		require.InDelta(t, meta.LEARNING_RATE*meta.SHARK_WIN_REWARD, out.Value, 1e-12)
		require.Equal(t, 1, roster.Get(game.Black, Shark).Learner().Table().Len())
	})

	t.Run("rejects moves the side could not have made", func(t *testing.T) {
		body := `{"before":"BBB..WWW.","move":{"from":"6","to":"5"},"reward":0,"after":"BBB.W.WW."}`
		resp, err := http.Post(srv.URL+"/agents/default/b/outcome", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServerTable(t *testing.T) {
	roster, srv := newTestServer(t)
	before := board(t, "BBB..WWW.")
	for _, m := range game.LegalMoves(before, game.Black) {
		roster.Get(game.Black, Default).Train(before, m, 1, game.Apply(before, m, game.Black))
	}

	resp, err := http.Get(srv.URL + "/agents/default/b/table?limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Entries []json.RawMessage `json:"entries"`
		Total   int               `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Entries, 2)
	require.Equal(t, 4, out.Total)

	bad, err := http.Get(srv.URL + "/agents/default/b/table?limit=-1")
	require.NoError(t, err)
	bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestRemote(t *testing.T) {
	roster, srv := newTestServer(t)
	remote := NewRemote(srv.URL+"/", game.White, Default, srv.Client())
	var _ Agent = remote

	start := board(t, "BBB..WWW.")
	after := game.Apply(start, game.Move{From: game.N1, To: game.Center}, game.Black)

	m, ok, err := remote.SelectMove(after, game.White)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, game.LegalMoves(after, game.White), m)

	_, ok, err = remote.SelectMove(board(t, "WBBBW...W"), game.Black)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, remote.RecordOutcome(after, m, 0, game.Apply(after, m, game.White)))
	require.Equal(t, 1, roster.Get(game.White, Default).Learner().Table().Len())

	require.NoError(t, remote.Save())
	require.NoError(t, remote.Load())
	require.Equal(t, 1, roster.Get(game.White, Default).Learner().Table().Len(), "reload reads what was saved")

	err = remote.RecordOutcome(start, game.Move{From: game.N1, To: game.Center}, 0, after)
	require.Error(t, err, "white cannot move black's token")
}
