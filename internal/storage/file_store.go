package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store with one JSON file per key under a directory.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created on first write if it does not exist.
func NewFileStore(dir string, logger zerolog.Logger) Store {
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "file-store").Logger(),
	}
}

// Load reads and decodes the snapshot for key. Missing files and decode
// failures both report false.
func (s *fileStore) Load(key string, v any) bool {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("key", key).Msg("no snapshot found")
		} else {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read snapshot")
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("corrupt snapshot, ignoring")
		return false
	}

	return true
}

// Save encodes v and writes it for key. All failures are logged and
// swallowed.
func (s *fileStore) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to encode snapshot")
		return
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create snapshot directory")
		return
	}

	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write snapshot")
		return
	}

	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("snapshot written")
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
