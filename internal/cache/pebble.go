package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/freeze/internal/metrics"
)

// Store is a pebble backed key value store of JSON encoded responses.
type Store struct {
	db *pebble.DB
}

// Open opens the store at path. A nil fs uses the operating system filesystem.
func Open(path string, fs vfs.FS) (*Store, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "freeze-rpc-cache")
	}

	cache := pebble.NewCache(64 << 20) // 64MB block cache
	defer cache.Unref()

	opts := &pebble.Options{
		MemTableSize:             32 << 20,
		MaxConcurrentCompactions: func() int { return 1 },
		Cache:                    cache,
		Levels:                   make([]pebble.LevelOptions, 7),
		FS:                       fs,
	}
	for i := range opts.Levels {
		opts.Levels[i] = pebble.LevelOptions{
			BlockSize:      32 << 10,
			IndexBlockSize: 256 << 10,
		}
		if i == 0 {
			opts.Levels[i].TargetFileSize = 64 << 20
			opts.Levels[i].Compression = pebble.SnappyCompression
		} else {
			opts.Levels[i].TargetFileSize = min(opts.Levels[i-1].TargetFileSize*2, 1<<30)
			// responses are mostly hex text and compress well
			opts.Levels[i].Compression = pebble.ZstdCompression
		}
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db: %w", err)
	}
	log.Debug().Str("path", path).Msg("Opened response cache")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// get decodes the value under key into dst. It reports false on a miss.
func (s *Store) get(key string, dst interface{}) (bool, error) {
	value, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	defer closer.Close()
	if err := json.Unmarshal(value, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	if err := s.db.Set([]byte(key), data, pebble.NoSync); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// through serves method/key from the store, falling back to fetch on a miss.
// Results rejected by keep are returned but not stored.
func through[T any](s *Store, chainID uint64, method string, key string, fetch func() (T, error), keep func(T) bool) (T, error) {
	fullKey := fmt.Sprintf("%d/%s/%s", chainID, method, key)
	var cached T
	hit, err := s.get(fullKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", fullKey).Msg("Ignoring unreadable cache entry")
	}
	if hit {
		metrics.CacheHits.WithLabelValues(method).Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues(method).Inc()

	result, err := fetch()
	if err != nil {
		return result, err
	}
	if keep(result) {
		if err := s.set(fullKey, result); err != nil {
			log.Warn().Err(err).Str("key", fullKey).Msg("Failed to cache response")
		}
	}
	return result, nil
}
