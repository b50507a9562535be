// Package cache memoizes results of rate-limited outbound lookups for a
// short window, absorbing bursty repeated queries.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultTTL is how long an entry stays valid unless overridden per set.
const DefaultTTL = 60 * time.Second

const cleanupInterval = 5 * time.Minute

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "response_cache_hits_total",
		Help: "Total number of response cache hits",
	})

	missesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "response_cache_misses_total",
		Help: "Total number of response cache misses",
	})
)

// Cache is a process-local TTL cache. An expired entry is treated as absent.
// There is no capacity bound; unbounded growth under pathological unique-key
// traffic is an accepted limitation of the single-process deployment.
type Cache struct {
	store *gocache.Cache
}

// New creates a Cache with the default TTL.
func New() *Cache {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a Cache whose Set uses the given TTL.
func NewWithTTL(ttl time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, cleanupInterval)}
}

// Get returns the cached value for key, or false when the key is absent or
// expired.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.store.Get(key)
	if ok {
		hitsTotal.Inc()
	} else {
		missesTotal.Inc()
	}
	return v, ok
}

// Set stores value under key with the cache's default TTL, overwriting any
// existing entry.
func (c *Cache) Set(key string, value any) {
	c.store.SetDefault(key, value)
}

// SetTTL stores value under key with an explicit TTL.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}
