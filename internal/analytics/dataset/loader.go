package dataset

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Loader reads dataset files on demand. Without a cache every call goes
// to disk. With a cache, entries are keyed by path, modification time and
// size, so an edited file is always re-read.
//
// Tables returned from a caching Loader are shared; callers must treat
// them as read-only.
type Loader struct {
	cache *expirable.LRU[string, *Table]
	log   *zap.Logger
}

// NewLoader returns a Loader. cacheSize <= 0 or ttl <= 0 disables caching.
func NewLoader(cacheSize int, ttl time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{log: logger}
	if cacheSize > 0 && ttl > 0 {
		l.cache = expirable.NewLRU[string, *Table](cacheSize, nil, ttl)
	}
	return l
}

// Caching reports whether the loader keeps parsed tables.
func (l *Loader) Caching() bool { return l.cache != nil }

// Load returns the table at path.
func (l *Loader) Load(path string) (*Table, error) {
	if l.cache == nil {
		return Load(path)
	}

	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	key := cacheKey(path, fi)
	if t, ok := l.cache.Get(key); ok {
		l.log.Debug("dataset cache hit", zap.String("path", path))
		return t, nil
	}

	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, t)
	l.log.Debug("dataset loaded", zap.String("path", path), zap.Int("rows", t.Len()))
	return t, nil
}

func cacheKey(path string, fi os.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, fi.ModTime().UnixNano(), fi.Size())
}
