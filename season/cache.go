package season

import (
	"context"
	"sync"
	"time"

	"f1countdown/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const DefaultCacheDuration = time.Hour

const refreshKey = "schedule"

// Freshness describes where a Snapshot's races came from.
type Freshness int

const (
	// Fresh races were fetched within the cache duration.
	Fresh Freshness = iota
	// Stale races are an expired copy served because a refresh failed.
	Stale
)

func (f Freshness) String() string {
	if f == Stale {
		return "stale"
	}
	return "fresh"
}

// Snapshot is the cached season as seen by one caller.
type Snapshot struct {
	Races     []model.Race
	FetchedAt time.Time
	Freshness Freshness
}

// Cache holds one season's normalized races and refreshes them lazily from
// its Source once they are older than the cache duration. Concurrent callers
// hitting an expired cache share a single upstream fetch.
type Cache struct {
	source Source
	ttl    time.Duration

	mu        sync.RWMutex
	races     []model.Race
	fetchedAt time.Time

	refresh singleflight.Group
}

func NewCache(source Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheDuration
	}
	return &Cache{
		source: source,
		ttl:    ttl,
	}
}

// Races returns the cached races, refreshing them first when expired. It only
// fails when no successful fetch has ever happened and a fresh one fails too.
func (c *Cache) Races(ctx context.Context, now time.Time) ([]model.Race, error) {
	snap, err := c.Get(ctx, now)
	if err != nil {
		return nil, err
	}
	return snap.Races, nil
}

// Get is Races with the fetch time and freshness attached.
func (c *Cache) Get(ctx context.Context, now time.Time) (Snapshot, error) {
	if snap, ok := c.fresh(now); ok {
		return snap, nil
	}

	v, err, _ := c.refresh.Do(refreshKey, func() (interface{}, error) {
		// another flight may have landed between the check above and here
		if snap, ok := c.fresh(now); ok {
			return snap, nil
		}
		return c.load(context.WithoutCancel(ctx), now)
	})
	if err == nil {
		return v.(Snapshot), nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() {
		log.Error().Err(err).Msg("season data unavailable and nothing cached")
		return Snapshot{}, err
	}
	log.Warn().Err(err).Time("fetchedAt", c.fetchedAt).Msg("serving stale season data")
	return Snapshot{Races: c.races, FetchedAt: c.fetchedAt, Freshness: Stale}, nil
}

// Schedule returns whatever is cached without touching the network.
func (c *Cache) Schedule() model.SeasonSchedule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.SeasonSchedule{Races: c.races, FetchedAt: c.fetchedAt}
}

func (c *Cache) fresh(now time.Time) (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() || now.Sub(c.fetchedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return Snapshot{Races: c.races, FetchedAt: c.fetchedAt, Freshness: Fresh}, true
}

func (c *Cache) load(ctx context.Context, now time.Time) (Snapshot, error) {
	entries, err := c.source.Fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	races, err := Normalize(entries)
	if err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	c.races = races
	c.fetchedAt = now
	c.mu.Unlock()

	log.Info().Int("entries", len(entries)).Int("races", len(races)).Msg("loaded F1 season data")
	return Snapshot{Races: races, FetchedAt: now, Freshness: Fresh}, nil
}
