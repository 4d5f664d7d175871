// Package fetch combines the standings API with the local cache: fresh cache
// entries short-circuit the network, and a failed request falls back to the
// last cached rows for the same season.
package fetch

import (
	"context"
	"time"

	"github.com/dbmrq/paddock/internal/logging"
	"github.com/dbmrq/paddock/internal/standings"
)

// DefaultTTL is how long a cached entry is served without asking the API.
const DefaultTTL = 60 * time.Minute

// API is the remote standings source.
type API interface {
	DriverStandings(ctx context.Context, year int) ([]standings.DriverStanding, error)
	ConstructorStandings(ctx context.Context, year int) ([]standings.ConstructorStanding, error)
}

// Cache stores rows keyed by standings.Key.
type Cache interface {
	Get(key string, v any) (time.Time, bool, error)
	Put(key string, v any, fetchedAt time.Time) error
}

// Source says where a row set came from.
type Source int

const (
	// SourceNetwork means the rows were just fetched from the API.
	SourceNetwork Source = iota
	// SourceCache means a cache entry within the TTL was used.
	SourceCache
	// SourceStale means the API failed and an older cache entry was used.
	SourceStale
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceNetwork:
		return "network"
	case SourceCache:
		return "cache"
	case SourceStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Meta describes a fetch result.
type Meta struct {
	Source    Source
	FetchedAt time.Time
	// Err is the API error that caused a SourceStale fallback.
	Err error
}

// Fetcher returns standings for a season.
type Fetcher struct {
	api    API
	cache  Cache
	ttl    time.Duration
	now    func() time.Time
	logger *logging.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTTL sets how long cached entries are served without a request.
// A zero TTL always asks the API first.
func WithTTL(ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.ttl = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		f.now = now
	}
}

// WithLogger sets the logger used for fetch decisions.
func WithLogger(l *logging.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// New creates a Fetcher. A nil cache disables caching.
func New(api API, cache Cache, opts ...Option) *Fetcher {
	f := &Fetcher{
		api:    api,
		cache:  cache,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logging.Global(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Drivers returns the drivers' standings for year. force skips the TTL check.
func (f *Fetcher) Drivers(ctx context.Context, year int, force bool) ([]standings.DriverStanding, Meta, error) {
	return fetchRows(ctx, f, standings.KindDrivers, year, force, f.api.DriverStandings)
}

// Constructors returns the constructors' standings for year. force skips the TTL check.
func (f *Fetcher) Constructors(ctx context.Context, year int, force bool) ([]standings.ConstructorStanding, Meta, error) {
	return fetchRows(ctx, f, standings.KindConstructors, year, force, f.api.ConstructorStandings)
}

func fetchRows[T any](
	ctx context.Context,
	f *Fetcher,
	kind standings.Kind,
	year int,
	force bool,
	call func(context.Context, int) ([]T, error),
) ([]T, Meta, error) {
	key := standings.Key(kind, year)
	log := f.logger.With("key", key)

	var cached []T
	cachedAt, hit := f.lookup(log, key, &cached)

	if hit && !force && f.ttl > 0 && f.now().Sub(cachedAt) < f.ttl {
		log.Debug("serving cached standings", "age", f.now().Sub(cachedAt).Round(time.Second))
		return cached, Meta{Source: SourceCache, FetchedAt: cachedAt}, nil
	}

	rows, err := call(ctx, year)
	if err != nil {
		if hit {
			log.Warn("standings request failed, using cache", "error", err, "cached_at", cachedAt)
			return cached, Meta{Source: SourceStale, FetchedAt: cachedAt, Err: err}, nil
		}
		log.Error("standings request failed, nothing cached", "error", err)
		return nil, Meta{}, err
	}

	fetchedAt := f.now()
	if f.cache != nil {
		if err := f.cache.Put(key, rows, fetchedAt); err != nil {
			log.Warn("failed to update standings cache", "error", err)
		}
	}
	log.Info("fetched standings", "rows", len(rows), "force", force)
	return rows, Meta{Source: SourceNetwork, FetchedAt: fetchedAt}, nil
}

func (f *Fetcher) lookup(log *logging.Logger, key string, v any) (time.Time, bool) {
	if f.cache == nil {
		return time.Time{}, false
	}
	at, ok, err := f.cache.Get(key, v)
	if err != nil {
		log.Warn("ignoring unreadable standings cache", "error", err)
		return time.Time{}, false
	}
	return at, ok
}
