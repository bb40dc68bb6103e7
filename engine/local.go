package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"blackwhite/agent"
	"blackwhite/experiments/metrics"
	"blackwhite/game"
	"blackwhite/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// WithSaver replaces the default of saving each seated agent on its own.
func WithSaver(saver Saver) Option {
	return func(e *Engine) {
		if saver != nil {
			e.saver = saver
		}
	}
}

func WithMaxMoves(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

// Engine drives games between two seats. It owns turn order, terminal
// detection, rewards and saving; agents only pick moves and learn.
type Engine struct {
	state     *game.GameState
	seats     map[game.Player]Seat
	saver     Saver
	maxMoves  int
	collector metrics.Collector
	score     Scoreboard
}

func New(setup game.Setup, black, white Seat, options ...Option) *Engine {
	for _, seat := range []Seat{black, white} {
		if seat.Agent == nil && seat.Chooser == nil {
			panic("seat needs an agent or a chooser")
		}
	}
	if black.Agent != nil && black.Agent.Side() != game.Black {
		panic("black seat holds an agent for " + black.Agent.Side().Name())
	}
	if white.Agent != nil && white.Agent.Side() != game.White {
		panic("white seat holds an agent for " + white.Agent.Side().Name())
	}

	e := &Engine{ // Default values
		state:     game.New(setup),
		seats:     map[game.Player]Seat{game.Black: black, game.White: white},
		maxMoves:  meta.MAX_TURNS,
		collector: metrics.NewCollector(),
	}
	e.saver = seatSaver{black.Agent, white.Agent}
	for _, option := range options {
		option(e)
	}
	return e
}

// State is the live game. It is only valid between calls to Run.
func (e *Engine) State() *game.GameState {
	return e.state
}

func (e *Engine) Scoreboard() Scoreboard {
	return e.score
}

// Run plays one game from the initial setup until a win, a stalemate, the
// move cap, a Quit, or ctx being done. Tables are saved whenever the game
// ends without an error.
func (e *Engine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	e.state.Reset()
	e.collector.Start(e.state.Player())
	log.Info().Msgf("%s is starting on %s", e.state.Player().Name(), e.state.Board())

	var aborted, capped bool
	turns := 0
	for e.state.Status() == game.InProgress {
		if ctx.Err() != nil {
			aborted = true
			break
		}
		if turns >= e.maxMoves {
			capped = true
			break
		}

		player := e.state.Player()
		seat := e.seats[player]
		choice, err := e.choose(ctx, seat)
		if err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("%s failed to choose: %w", player.Name(), err)
		}

		switch choice.Action {
		case Undo:
			if err := e.state.Undo(); err != nil {
				log.Warn().Err(err).Msg("undo ignored")
			}
			continue
		case Reset:
			e.state.Reset()
			continue
		case Quit:
			aborted = true
		}
		if aborted {
			break
		}

		outcome := e.state.Play(choice.Move)
		reward := Reward(outcome.After, outcome.Player)
		if seat.Agent != nil {
			err := seat.Agent.RecordOutcome(outcome.Before, outcome.Move, reward, outcome.After)
			if err != nil {
				return metrics.GameMetric{}, nil, fmt.Errorf("%s failed to record %s: %w", player.Name(), outcome.Move, err)
			}
		}
		e.collector.AddMove(metrics.MoveMetric{
			Player: player,
			Move:   outcome.Move,
			Reward: reward,
			Won:    outcome.Won,
		})
		turns++
		log.Debug().Msgf("%s played %s, board %s", player, outcome.Move, outcome.After)
	}

	winner, _ := e.state.Winner()
	gameMetric := e.collector.Complete(winner, e.state.Status())
	gameMetric.Capped = capped
	gameMetric.Aborted = aborted
	e.score.add(gameMetric)

	switch {
	case gameMetric.Status == game.Won:
		log.Info().Msgf("%s won after %d moves", winner.Name(), gameMetric.TotalMoves)
	case gameMetric.Status == game.Stalemate:
		log.Info().Msgf("%s has no legal moves after %d moves", e.state.Player().Name(), gameMetric.TotalMoves)
	case capped:
		log.Info().Msgf("stopped after %d moves without a winner", gameMetric.TotalMoves)
	case aborted:
		log.Info().Msgf("game aborted after %d moves", gameMetric.TotalMoves)
	}

	if err := e.saver.SaveAll(); err != nil {
		return gameMetric, e.collector.Moves(), fmt.Errorf("failed to save tables: %w", err)
	}
	return gameMetric, e.collector.Moves(), nil
}

// RunBatch plays n games in sequence. ctx is only checked between games, a
// game in progress always runs to its end. The tables are saved once more
// when the batch stops.
func (e *Engine) RunBatch(ctx context.Context, n int) ([]Result, error) {
	results := make([]Result, 0, n)
	var err error
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			log.Info().Msgf("batch aborted after %d of %d games", i, n)
			break
		}
		gameMetric, moves, runErr := e.Run(context.WithoutCancel(ctx))
		if runErr != nil {
			return results, runErr
		}
		results = append(results, Result{Game: gameMetric, Moves: moves})
	}

	log.Info().Msgf("score after %d games: black %d, white %d, stalemates %d, capped %d",
		e.score.Games, e.score.BlackWins, e.score.WhiteWins, e.score.Stalemates, e.score.Capped)
	if saveErr := e.saver.SaveAll(); saveErr != nil {
		return results, errors.Join(err, fmt.Errorf("failed to save tables: %w", saveErr))
	}
	return results, err
}

func (e *Engine) choose(ctx context.Context, seat Seat) (Choice, error) {
	if seat.Chooser != nil {
		choice, err := seat.Chooser.Choose(ctx, e.state)
		if err != nil {
			return Choice{}, err
		}
		if choice.Action == Play && !slices.Contains(e.state.LegalMoves(), choice.Move) {
			return Choice{}, fmt.Errorf("illegal move %s", choice.Move)
		}
		return choice, nil
	}

	m, ok, err := seat.Agent.SelectMove(e.state.Board(), e.state.Player())
	if err != nil {
		return Choice{}, err
	}
	if !ok {
		return Choice{}, fmt.Errorf("no move selected on %s", e.state.Board())
	}
	if !slices.Contains(e.state.LegalMoves(), m) {
		return Choice{}, fmt.Errorf("illegal move %s", m)
	}
	return Choice{Action: Play, Move: m}, nil
}

// seatSaver saves the seated agents when no roster is shared.
type seatSaver []agent.Agent

func (s seatSaver) SaveAll() error {
	var errs []error
	for _, a := range s {
		if a != nil {
			errs = append(errs, a.Save())
		}
	}
	return errors.Join(errs...)
}
