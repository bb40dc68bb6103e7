package qtable

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrCorrupt marks persisted data that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt q-table")

const formatVersion = 1

type file struct {
	Version int      `json:"version"`
	Entries []Record `json:"entries"`
}

// Load reads a table saved by Save. A missing file yields an empty table.
// Any other failure is returned, wrapping ErrCorrupt when the file exists
// but does not decode.
func Load(path string) (*Table, error) {
	t := New()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no q-table on disk, starting empty")
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open q-table: %w", err)
	}
	defer f.Close()

	var data file
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCorrupt, path, err)
	}
	if data.Version != formatVersion {
		return nil, fmt.Errorf("%w %s: unsupported version %d", ErrCorrupt, path, data.Version)
	}
	for _, r := range data.Entries {
		if !r.State.ToMove.Valid() {
			return nil, fmt.Errorf("%w %s: entry without player to move", ErrCorrupt, path)
		}
		t.Set(r.State, r.Move, r.Value)
	}

	log.Debug().Str("path", path).Int("entries", t.Len()).Msg("loaded q-table")
	return t, nil
}

// Save writes the whole table to path. The data goes to a temporary file in
// the same directory which then replaces path, so an interrupted save never
// leaves a truncated table behind.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary q-table file: %w", err)
	}
	defer os.Remove(tmp.Name()) // No-op once renamed

	enc := json.NewEncoder(tmp)
	if err := enc.Encode(file{Version: formatVersion, Entries: t.Records()}); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode q-table: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync q-table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close q-table: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace q-table: %w", err)
	}

	log.Debug().Str("path", path).Int("entries", t.Len()).Msg("saved q-table")
	return nil
}
