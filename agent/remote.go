package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"blackwhite/game"
)

// Remote is an Agent served by NewServer in another process.
type Remote struct {
	baseURL string
	side    game.Player
	variant Variant
	client  *http.Client
}

// NewRemote talks to the agent server at baseURL. A nil client uses
// http.DefaultClient.
func NewRemote(baseURL string, side game.Player, v Variant, client *http.Client) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		side:    side,
		variant: v,
		client:  client,
	}
}

func (r *Remote) Side() game.Player { return r.side }
func (r *Remote) Variant() Variant  { return r.variant }

func (r *Remote) SelectMove(b game.Board, p game.Player) (game.Move, bool, error) {
	resp, err := r.post("move", MoveRequest{Board: b, Player: p})
	if err != nil {
		return game.Move{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return game.Move{}, false, nil
	}
	var out MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return game.Move{}, false, fmt.Errorf("failed to decode move: %w", err)
	}
	return out.Move, true, nil
}

func (r *Remote) RecordOutcome(before game.Board, m game.Move, reward float64, after game.Board) error {
	resp, err := r.post("outcome", OutcomeRequest{Before: before, Move: m, Reward: reward, After: after})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (r *Remote) Save() error {
	resp, err := r.post("save", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (r *Remote) Load() error {
	resp, err := r.post("load", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// post sends payload as JSON and returns the response if it succeeded.
func (r *Remote) post(action string, payload any) (*http.Response, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", action, err)
		}
		body = bytes.NewReader(data)
	}

	url := fmt.Sprintf("%s/agents/%s/%s/%s", r.baseURL, r.variant, strings.ToLower(r.side.String()), action)
	resp, err := r.client.Post(url, "application/json", body)
	if err != nil {
		return nil, fmt.Errorf("failed to reach agent: %w", err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		out, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}
	return resp, nil
}
