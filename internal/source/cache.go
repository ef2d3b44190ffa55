package source

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/datagrid/internal/logging"
)

// MaxCacheTTL is the longest accepted cache TTL.
const MaxCacheTTL = 24 * time.Hour

// ErrInvalidTTL is returned for TTLs outside [0, MaxCacheTTL].
var ErrInvalidTTL = errors.New("cache TTL must be between 0 and 24h")

// ParseTTL parses a TTL given as integer seconds ("300") or a duration ("5m").
// Zero disables caching.
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	var ttl time.Duration
	if seconds, err := strconv.Atoi(s); err == nil {
		ttl = time.Duration(seconds) * time.Second
	} else {
		ttl, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", err)
		}
	}

	if ttl < 0 || ttl > MaxCacheTTL {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidTTL, ttl)
	}
	return ttl, nil
}

// QueryKey returns a deterministic cache key for the sort and page of q.
// The query id is not part of the key.
func QueryKey(q Query) string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(q.Sort.Field)),
		strings.ToLower(string(q.Sort.Direction)),
		strconv.Itoa(q.PageNo),
		strconv.Itoa(q.PageSize),
	}, ":")
}

// cacheEntry is a cached reply with its expiry.
type cacheEntry struct {
	result    Result
	expiresAt time.Time
}

// CachedService answers repeated queries from memory until they expire.
// It is safe for concurrent use.
type CachedService struct {
	next Service
	ttl  time.Duration
	now  func() time.Time
	log  zerolog.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// CacheOption configures a CachedService.
type CacheOption func(*CachedService)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachedService) {
		c.now = now
	}
}

// WithCacheLogger sets the cache logger.
func WithCacheLogger(l zerolog.Logger) CacheOption {
	return func(c *CachedService) {
		c.log = logging.ComponentLogger(l, "cache")
	}
}

// NewCachedService wraps next with a cache of the given TTL.
func NewCachedService(next Service, ttl time.Duration, opts ...CacheOption) *CachedService {
	c := &CachedService{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		log:     zerolog.Nop(),
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns a cached reply for an equivalent query when one is still
// valid, otherwise it asks the wrapped service. Errors are not cached.
func (c *CachedService) Fetch(ctx context.Context, q Query) (Result, error) {
	key := QueryKey(q)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if ok {
		c.log.Debug().Str("query_id", q.ID.String()).Msg("cache hit")
		return Result{QueryID: q.ID, Rows: slices.Clone(entry.result.Rows), Total: entry.result.Total}, nil
	}

	res, err := c.next.Fetch(ctx, q)
	if err != nil {
		return Result{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{result: res, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return res, nil
}

// Invalidate drops every cached reply.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len returns the number of cached replies, including expired ones not yet evicted.
func (c *CachedService) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
