package storage

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// memoryStore implements Store with an in-process map. It is used for tests
// and for sessions that opt out of durable snapshots. Values round-trip
// through JSON so behaviour matches the file store.
type memoryStore struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	logger zerolog.Logger
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(logger zerolog.Logger) Store {
	return &memoryStore{
		blobs:  make(map[string][]byte),
		logger: logger.With().Str("component", "memory-store").Logger(),
	}
}

// Load decodes the blob stored under key into v.
func (s *memoryStore) Load(key string, v any) bool {
	s.mu.RLock()
	data, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("corrupt snapshot, ignoring")
		return false
	}
	return true
}

// Save encodes v and stores the blob under key.
func (s *memoryStore) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to encode snapshot")
		return
	}

	s.mu.Lock()
	s.blobs[key] = data
	s.mu.Unlock()
}
