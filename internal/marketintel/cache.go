package marketintel

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/trends"
)

// StoreKey is the document key under which the aggregate is persisted.
const StoreKey = "market_cache"

const staleAfter = 7 * 24 * time.Hour

// defaultPace is the minimum delay between provider calls during refresh.
const defaultPace = 2 * time.Second

// Store is the persistence boundary: an opaque get/set document store.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Provider supplies keyword interest series for the refresh cycle.
type Provider interface {
	InterestOverTime(ctx context.Context, keyword, window string) ([]trends.InterestPoint, error)
}

// Cache holds per-category price bands and trend signals. Reads operate on
// an immutable snapshot swapped in atomically by the refresh cycle, so many
// pricing requests can read concurrently while one refresh writes.
type Cache struct {
	mu     sync.RWMutex
	snap   Snapshot
	seeded Snapshot

	refreshMu sync.Mutex

	store    Store
	provider Provider
	limiter  *rate.Limiter
	now      func() time.Time
}

type Config struct {
	Store    Store
	Provider Provider
	// Pace is the minimum inter-call delay during refresh; zero means the
	// 2s default.
	Pace time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Load constructs a Cache from the persisted aggregate, falling back to the
// built-in seed table when the document is absent or corrupt.
func Load(cfg Config) *Cache {
	pace := cfg.Pace
	if pace <= 0 {
		pace = defaultPace
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	c := &Cache{
		seeded:   DefaultSnapshot(),
		store:    cfg.Store,
		provider: cfg.Provider,
		limiter:  rate.NewLimiter(rate.Every(pace), 1),
		now:      now,
	}
	c.snap = c.loadSnapshot()
	return c
}

func (c *Cache) loadSnapshot() Snapshot {
	if c.store == nil {
		return DefaultSnapshot()
	}
	blob, ok, err := c.store.Get(StoreKey)
	if err != nil {
		log.Printf("market cache: load failed, using defaults: %v", err)
		return DefaultSnapshot()
	}
	if !ok {
		return DefaultSnapshot()
	}
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		log.Printf("market cache: corrupt persisted document, using defaults: %v", err)
		return DefaultSnapshot()
	}
	snap.normalize()
	// A persisted document that lost its category map entirely is treated
	// as corrupt; partial maps are kept as-is.
	if len(snap.Categories) == 0 {
		return DefaultSnapshot()
	}
	return snap
}

// Get returns the cached record for a category. The seed table guarantees
// every tracked category resolves even before the first refresh; ok is false
// only for categories this cache has never known.
func (c *Cache) Get(category string) (CategoryMarketData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.snap.Categories[category]
	return data, ok
}

// CategoryMultiplier maps a category's trend score to a demand multiplier.
// Unknown categories are neutral.
func (c *Cache) CategoryMultiplier(category string) float64 {
	c.mu.RLock()
	data, ok := c.snap.Categories[category]
	c.mu.RUnlock()
	if !ok {
		return 1.0
	}
	switch score := data.TrendScore; {
	case score > 80:
		return 1.20
	case score > 65:
		return 1.15
	case score > 50:
		return 1.05
	case score > 35:
		return 1.00
	case score > 20:
		return 0.95
	default:
		return 0.90
	}
}

// ActiveSeasonalMultiplier returns the strongest multiplier among currently
// active seasonal trends, or 1.0 when none is active.
func (c *Cache) ActiveSeasonalMultiplier() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	max := 1.0
	for _, trend := range c.snap.SeasonalTrends {
		if trend.Active && trend.Multiplier > max {
			max = trend.Multiplier
		}
	}
	return max
}

// IsStale reports whether the aggregate has never been refreshed or is older
// than the 7-day freshness threshold.
func (c *Cache) IsStale() bool {
	c.mu.RLock()
	last := c.snap.LastUpdated
	c.mu.RUnlock()
	if last.IsZero() {
		return true
	}
	return c.now().Sub(last) > staleAfter
}

// Snapshot returns a deep copy of the aggregate for callers that need a
// consistent multi-field view.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.clone()
}

func (c *Cache) swap(snap Snapshot) {
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
}

func (c *Cache) persist(snap Snapshot) {
	if c.store == nil {
		return
	}
	blob, err := json.Marshal(snap)
	if err != nil {
		log.Printf("market cache: marshal failed, skipping persist: %v", err)
		return
	}
	if err := c.store.Set(StoreKey, blob); err != nil {
		// Persistence failures never fail the cycle; the in-memory
		// aggregate stays authoritative until the next attempt.
		log.Printf("market cache: persist failed: %v", err)
	}
}
