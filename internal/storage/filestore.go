package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// SchemaVersion is the current on-disk envelope version.
const SchemaVersion = 1

var (
	// ErrCapacityExceeded is returned when a collection rewrite would grow
	// past the configured byte budget. It surfaces at the storage boundary
	// only; callers are not expected to predict it.
	ErrCapacityExceeded = errors.New("store capacity exceeded")
)

// envelope wraps a collection with its schema version so future layout
// changes can be migrated on read.
type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

// FileStore persists named collections as JSON files in a single directory.
// Every write rewrites the whole collection; there is no incremental update
// and no cross-collection atomicity.
type FileStore struct {
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// New creates the data directory if needed and returns a store bound to it.
// maxBytes caps the serialized size of any single collection; zero disables
// the cap.
func New(dir string, maxBytes int64, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes, logger: logger}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads the named collection into out. A missing file is treated as an
// empty collection, so first runs need no setup step.
func (s *FileStore) Load(name string, out interface{}) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read collection %s: %w", name, err)
	}

	records, err := s.migrate(name, data)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	if err := json.Unmarshal(records, out); err != nil {
		return fmt.Errorf("failed to decode collection %s: %w", name, err)
	}
	return nil
}

// migrate normalizes any historical on-disk layout to the current record
// set. Version 0 files are bare record arrays written before the envelope
// existed.
func (s *FileStore) migrate(name string, data []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version >= 1 {
		if env.Version > SchemaVersion {
			return nil, fmt.Errorf("collection %s has unsupported version %d", name, env.Version)
		}
		return env.Records, nil
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse collection %s: %w", name, err)
	}
	s.logger.Info("Migrating legacy collection file",
		zap.String("collection", name),
	)
	return raw, nil
}

// Save rewrites the named collection with the given records. The write goes
// through a temp file and rename so a crash mid-write cannot leave a
// truncated collection behind.
func (s *FileStore) Save(name string, records interface{}) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}
	data, err := json.Marshal(envelope{Version: SchemaVersion, Records: raw})
	if err != nil {
		return fmt.Errorf("failed to encode envelope for %s: %w", name, err)
	}

	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return fmt.Errorf("collection %s needs %d bytes, budget is %d: %w",
			name, len(data), s.maxBytes, ErrCapacityExceeded)
	}

	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", name, err)
	}
	return nil
}

// Health reports the on-disk size of each known collection, mirroring what
// a database layer would log on startup.
func (s *FileStore) Health() map[string]interface{} {
	health := make(map[string]interface{})
	for _, name := range []string{"users", "products", "comments", "session"} {
		info, err := os.Stat(s.path(name))
		if err != nil {
			health[name] = "absent"
			continue
		}
		health[name] = info.Size()
	}
	return health
}
