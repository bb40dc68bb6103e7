package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AgentConfig identifies one agent taking part in an experiment.
type AgentConfig struct {
	ID      int
	Variant string
}

// Setup is the experiment metadata stored next to the records.
type Setup struct {
	Name         string        `json:"name"`
	Board        string        `json:"board"`
	First        string        `json:"first"`
	NumGames     int           `json:"numGames"` // Per matchup
	LearningRate float64       `json:"learningRate"`
	Discount     float64       `json:"discount"`
	Epsilon      float64       `json:"epsilon"`
	Seed         uint64        `json:"seed"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	Duration     time.Duration `json:"duration"`
}

type GameRecord struct {
	Matchup int
	Black   int // AgentConfig.ID
	White   int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game uuid.UUID // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> for the experiment files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.json")
	data, err := json.MarshalIndent(setup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "variant"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Variant,
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "matchup", "black", "white", "starting_player", "winner", "status", "capped", "aborted", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		winner := ""
		if record.Winner != 0 {
			winner = record.Winner.String()
		}
		rows = append(rows, []string{
			record.ID.String(),
			strconv.Itoa(record.Matchup),
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			record.StartingPlayer.String(),
			winner,
			record.Status.String(),
			strconv.FormatBool(record.Capped),
			strconv.FormatBool(record.Aborted),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "from", "to", "reward", "won"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game.String(),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Move.From.String(),
			record.Move.To.String(),
			strconv.FormatFloat(record.Reward, 'g', -1, 64),
			strconv.FormatBool(record.Won),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
