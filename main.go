package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"blackwhite/agent"
	"blackwhite/config"
	"blackwhite/engine"
	"blackwhite/experiments"
	"blackwhite/game"
	"blackwhite/learner"
	"blackwhite/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const usage = `usage: blackwhite <command> [flags]

commands:
  simulate    train two AI seats against each other
  play        play against an AI seat (or another human) on the terminal
  serve       serve the agents over HTTP
  inspect     print part of one q-table
  experiment  run every matchup and store the records`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		stop() // A second interrupt kills the process
	}()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Msgf("%s failed", os.Args[1])
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	cfg.Flags(fs)
	side := fs.String("side", "B", "inspect: side of the table")
	variant := fs.String("variant", "default", "inspect: variant of the table")
	limit := fs.Int("limit", 10, "inspect: number of entries to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogging(cfg)

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	log.Debug().Msgf("seed %d", cfg.Seed)

	switch command {
	case "simulate":
		return simulate(ctx, cfg)
	case "play":
		return play(ctx, cfg)
	case "serve":
		return serve(ctx, cfg)
	case "inspect":
		return inspect(cfg, *side, *variant, *limit)
	case "experiment":
		return experiment(ctx, cfg)
	}
	return fmt.Errorf("unknown command %q\n%s", command, usage)
}

func setupLogging(cfg config.Config) {
	level, _ := cfg.Level() // Validated
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

// seats builds the AI seats. Human seats are left empty. The roster is nil
// when the agents are remote.
func seats(cfg config.Config) (map[game.Player]engine.Seat, *agent.Roster, error) {
	out := map[game.Player]engine.Seat{}
	var roster *agent.Roster
	if cfg.RemoteURL == "" {
		var err error
		roster, err = agent.LoadRoster(cfg.TableDir,
			learner.WithRand(rand.New(rand.NewSource(cfg.Seed))),
			learner.WithMetrics(),
		)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, side := range []game.Player{game.Black, game.White} {
		v, ok, err := cfg.Seat(side)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		if roster != nil {
			out[side] = engine.Seat{Agent: roster.Get(side, v)}
			continue
		}
		remote := agent.NewRemote(cfg.RemoteURL, side, v, &http.Client{Timeout: 10 * time.Second})
		if err := remote.Load(); err != nil {
			return nil, nil, err
		}
		out[side] = engine.Seat{Agent: remote}
	}

	return out, roster, nil
}

func newEngine(setup game.Setup, s map[game.Player]engine.Seat, roster *agent.Roster) *engine.Engine {
	if roster == nil {
		return engine.New(setup, s[game.Black], s[game.White]) // Each remote seat saves itself
	}
	return engine.New(setup, s[game.Black], s[game.White], engine.WithSaver(roster))
}

func logLearning(roster *agent.Roster) {
	if roster == nil {
		return
	}
	for _, a := range roster.All() {
		m := a.Learner().Metrics()
		if m.Updates == 0 {
			continue
		}
		log.Info().Msgf("%s %s: %d updates, %d explorations, %d exploitations (%d ties), %d shaped rewards, %d entries",
			a.Side().Name(), a.Variant(), m.Updates, m.Explorations, m.Exploitations, m.Ties, m.ShapedRewards, a.Learner().Table().Len())
	}
}

func simulate(ctx context.Context, cfg config.Config) error {
	setup, _ := cfg.Setup()
	s, roster, err := seats(cfg)
	if err != nil {
		return err
	}
	if len(s) != 2 {
		return errors.New("simulate needs two AI seats")
	}

	e := newEngine(setup, s, roster)
	_, err = e.RunBatch(ctx, cfg.Games)
	logLearning(roster)
	score := e.Scoreboard()
	fmt.Printf("games %d, black %d, white %d, stalemates %d, capped %d\n",
		score.Games, score.BlackWins, score.WhiteWins, score.Stalemates, score.Capped)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func play(ctx context.Context, cfg config.Config) error {
	setup, _ := cfg.Setup()
	s, roster, err := seats(cfg)
	if err != nil {
		return err
	}
	if len(s) == 2 {
		return errors.New("play needs a human seat, set -black-ai or -white-ai to none")
	}

	human := player.NewPlayer(os.Stdin, os.Stdout)
	for _, side := range []game.Player{game.Black, game.White} {
		if _, ok := s[side]; !ok {
			s[side] = engine.Seat{Chooser: human}
		}
	}

	e := newEngine(setup, s, roster)
	for {
		g, _, err := e.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
		if g.Aborted {
			return nil
		}
		fmt.Println(player.Render(e.State().Board()))
		switch g.Status {
		case game.Won:
			fmt.Printf("%s wins after %d moves\n", g.Winner.Name(), g.TotalMoves)
		case game.Stalemate:
			fmt.Printf("%s cannot move, no result\n", e.State().Player().Name())
		default:
			fmt.Printf("draw after %d moves\n", g.TotalMoves)
		}
		fmt.Println("new game, q to quit")
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	roster, err := agent.LoadRoster(cfg.TableDir, learner.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.AgentAddr, Handler: agent.NewServer(roster)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("agent server shutdown")
		}
	}()

	log.Info().Msgf("starting agent server on %s ...", cfg.AgentAddr)
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return roster.SaveAll()
}

func inspect(cfg config.Config, side, variant string, limit int) error {
	p, err := game.ParsePlayer(side)
	if err != nil {
		return err
	}
	v, err := agent.ParseVariant(variant)
	if err != nil {
		return err
	}
	a, err := agent.NewTableAgent(cfg.TableDir, p, v)
	if err != nil {
		return err
	}

	ins := a.Inspect(limit)
	fmt.Printf("%s (%d entries)\n", a.Path(), ins.Total)
	for _, r := range ins.Entries {
		fmt.Printf("%s  %-4s %+.6f\n", r.State, r.Move, r.Value)
	}
	return nil
}

func experiment(ctx context.Context, cfg config.Config) error {
	setup, _ := cfg.Setup()
	dir, err := experiments.Run(ctx, experiments.Config{
		Name:       "matchups",
		Setup:      setup,
		NumGames:   cfg.Games,
		TableDir:   cfg.TableDir,
		RecordsDir: cfg.RecordsDir,
		Seed:       cfg.Seed,
	}, experiments.Matchups)
	if dir != "" {
		fmt.Println(dir)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
