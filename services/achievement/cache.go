package achievement

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{Name: "achievement_definition_cache_hits_total"})
	cacheMiss = prometheus.NewCounter(prometheus.CounterOpts{Name: "achievement_definition_cache_miss_total"})
)

// DefinitionCache keeps the enabled-definition list warm between evaluation
// batches. Definitions change rarely and every batch reads the full list, so
// a short TTL plus singleflight keeps the definition table off the hot path.
type DefinitionCache struct {
	repo DefinitionRepository

	mu       sync.RWMutex
	items    []Definition
	loadedAt time.Time
	ttl      time.Duration
	group    singleflight.Group
}

func NewDefinitionCache(repo DefinitionRepository, ttl time.Duration) *DefinitionCache {
	return &DefinitionCache{
		repo: repo,
		ttl:  ttl,
	}
}

func (c *DefinitionCache) ListEnabled(ctx context.Context) ([]Definition, error) {
	c.mu.RLock()
	fresh := c.items != nil && (c.ttl <= 0 || time.Since(c.loadedAt) <= c.ttl)
	items := c.items
	c.mu.RUnlock()

	if fresh {
		cacheHits.Inc()
		return items, nil
	}
	cacheMiss.Inc()

	v, err, _ := c.group.Do("enabled", func() (any, error) {
		defs, err := c.repo.ListEnabled(ctx, "")
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items = defs
		c.loadedAt = time.Now()
		c.mu.Unlock()
		return defs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Definition), nil
}

func (c *DefinitionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loadedAt = time.Time{}
}
