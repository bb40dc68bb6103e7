package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"blackwhite/agent"
	"blackwhite/game"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Seat values for BlackAI and WhiteAI.
const (
	SeatNone    = "none"
	SeatDefault = "default"
	SeatShark   = "shark"
)

type Config struct {
	TableDir   string
	Black      string // Initial positions, e.g. "1 2 3"
	White      string
	First      string
	BlackAI    string
	WhiteAI    string
	Games      int
	Seed       uint64 // 0 seeds from the clock
	AgentAddr  string
	RemoteURL  string // Agent server for AI seats, empty for local tables
	RecordsDir string
	LogLevel   string
	LogPretty  bool
}

func defaults() Config {
	return Config{
		TableDir:   ".",
		Black:      "1 2 3",
		White:      "6 7 8",
		First:      "B",
		BlackAI:    SeatDefault,
		WhiteAI:    SeatShark,
		Games:      100,
		AgentAddr:  ":8080",
		RecordsDir: "experiments",
		LogLevel:   "info",
	}
}

// LoadEnv reads the given dotenv files, or .env when none are given, into the
// process environment. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// FromEnv overlays the environment on the defaults.
func FromEnv() (Config, error) {
	c := defaults()
	stringVar(&c.TableDir, "QTABLE_DIR")
	stringVar(&c.Black, "BLACK_POSITIONS")
	stringVar(&c.White, "WHITE_POSITIONS")
	stringVar(&c.First, "FIRST_PLAYER")
	stringVar(&c.BlackAI, "BLACK_AI")
	stringVar(&c.WhiteAI, "WHITE_AI")
	stringVar(&c.AgentAddr, "AGENT_ADDR")
	stringVar(&c.RemoteURL, "AGENT_URL")
	stringVar(&c.RecordsDir, "RECORDS_DIR")
	stringVar(&c.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv("GAMES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("GAMES: %w", err)
		}
		c.Games = n
	}
	if v, ok := os.LookupEnv("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("SEED: %w", err)
		}
		c.Seed = n
	}
	if v, ok := os.LookupEnv("LOG_PRETTY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("LOG_PRETTY: %w", err)
		}
		c.LogPretty = b
	}
	return c, nil
}

func stringVar(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Flags registers every field on fs, with the current values as defaults.
func (c *Config) Flags(fs *flag.FlagSet) {
	fs.StringVar(&c.TableDir, "tables", c.TableDir, "directory holding the q-tables")
	fs.StringVar(&c.Black, "black", c.Black, "initial black positions")
	fs.StringVar(&c.White, "white", c.White, "initial white positions")
	fs.StringVar(&c.First, "first", c.First, "side moving first (B or W)")
	fs.StringVar(&c.BlackAI, "black-ai", c.BlackAI, "black seat: none, default or shark")
	fs.StringVar(&c.WhiteAI, "white-ai", c.WhiteAI, "white seat: none, default or shark")
	fs.IntVar(&c.Games, "games", c.Games, "games per batch")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed, 0 for the clock")
	fs.StringVar(&c.AgentAddr, "addr", c.AgentAddr, "agent server address")
	fs.StringVar(&c.RemoteURL, "remote", c.RemoteURL, "agent server URL for AI seats")
	fs.StringVar(&c.RecordsDir, "records", c.RecordsDir, "experiment records directory")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace, debug, info, warn or error")
	fs.BoolVar(&c.LogPretty, "log-pretty", c.LogPretty, "human readable logs")
}

// Setup parses the initial board.
func (c Config) Setup() (game.Setup, error) {
	return game.ParseSetup(c.Black, c.White, c.First)
}

// Seat parses the AI choice for side. ok is false for a human seat.
func (c Config) Seat(side game.Player) (v agent.Variant, ok bool, err error) {
	s := c.BlackAI
	if side == game.White {
		s = c.WhiteAI
	}
	if strings.EqualFold(strings.TrimSpace(s), SeatNone) {
		return 0, false, nil
	}
	v, err = agent.ParseVariant(s)
	if err != nil {
		return 0, false, fmt.Errorf("%s seat: %w", side.Name(), err)
	}
	return v, true, nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

func (c Config) Validate() error {
	if _, err := c.Setup(); err != nil {
		return err
	}
	for _, side := range []game.Player{game.Black, game.White} {
		if _, _, err := c.Seat(side); err != nil {
			return err
		}
	}
	if c.Games < 0 {
		return fmt.Errorf("games must not be negative, got %d", c.Games)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}
