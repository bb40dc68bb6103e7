package experiments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blackwhite/agent"
	"blackwhite/engine"
	"blackwhite/experiments/metrics"
	"blackwhite/game"
	"blackwhite/learner"
	"blackwhite/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Matchup struct {
	Black agent.Variant
	White agent.Variant
}

// Matchups pairs every variant with every other, on both sides.
var Matchups = []Matchup{
	{Black: agent.Default, White: agent.Default},
	{Black: agent.Default, White: agent.Shark},
	{Black: agent.Shark, White: agent.Default},
	{Black: agent.Shark, White: agent.Shark},
}

type Config struct {
	Name       string
	Setup      game.Setup
	NumGames   int // Per matchup
	MaxMoves   int
	TableDir   string
	RecordsDir string
	Seed       uint64
}

func agentConfigs() []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, 0, len(agent.Variants))
	for _, v := range agent.Variants {
		configs = append(configs, metrics.AgentConfig{ID: int(v), Variant: v.String()})
	}
	return configs
}

// Run plays cfg.NumGames games for every matchup with the tables in
// cfg.TableDir, training them as it goes, and writes the records to a new
// timestamped directory under cfg.RecordsDir, which is returned. When ctx
// is done the remaining games are skipped and whatever was played is still
// written.
func Run(ctx context.Context, cfg Config, matchUps []Matchup) (string, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(cfg.Seed))
	roster, err := agent.LoadRoster(cfg.TableDir, learner.WithRand(rng))
	if err != nil {
		return "", err
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	var runErr error
	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between black=%s and white=%s...", mi+1, len(matchUps), matchup.Black, matchup.White)

		e := engine.New(cfg.Setup,
			engine.Seat{Agent: roster.Get(game.Black, matchup.Black)},
			engine.Seat{Agent: roster.Get(game.White, matchup.White)},
			engine.WithSaver(roster),
			engine.WithMaxMoves(cfg.MaxMoves),
		)
		results, err := e.RunBatch(ctx, cfg.NumGames)
		for _, r := range results {
			gameRecords = append(gameRecords, metrics.GameRecord{
				Matchup:    mi,
				Black:      int(matchup.Black),
				White:      int(matchup.White),
				GameMetric: r.Game,
			})
			for _, mm := range r.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       r.Game.ID,
					MoveMetric: mm,
				})
			}
		}
		if err != nil {
			runErr = err
			break
		}

		score := e.Scoreboard()
		log.Info().Msgf("completed matchup %d of %d: black %d, white %d, capped %d", mi+1, len(matchUps), score.BlackWins, score.WhiteWins, score.Capped)
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	writer, err := metrics.NewWriter(cfg.RecordsDir, cfg.Name)
	if err != nil {
		return "", errors.Join(runErr, fmt.Errorf("failed to create experiment writer: %w", err))
	}

	end := time.Now()
	err = writer.WriteSetup(metrics.Setup{
		Name:         cfg.Name,
		Board:        cfg.Setup.Board.String(),
		First:        cfg.Setup.First.String(),
		NumGames:     cfg.NumGames,
		LearningRate: meta.LEARNING_RATE,
		Discount:     meta.DISCOUNT,
		Epsilon:      meta.EPSILON,
		Seed:         cfg.Seed,
		StartTime:    start,
		EndTime:      end,
		Duration:     end.Sub(start),
	})
	if err != nil {
		return writer.Dir(), errors.Join(runErr, err)
	}

	if err := writer.WriteAgentConfigs(agentConfigs()); err != nil {
		return writer.Dir(), errors.Join(runErr, err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return writer.Dir(), errors.Join(runErr, err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return writer.Dir(), errors.Join(runErr, err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), runErr
}
