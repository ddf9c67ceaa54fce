package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// CachedStore keeps the per group preset lists of the wrapped store in
// memory. Add and Delete drop the cached list of their group.
type CachedStore struct {
	store          Store
	cache          *freecache.Cache
	ttlSeconds     int
	metricsManager *metrics.Manager
}

func NewCachedStore(store Store, sizeMB, ttlSeconds int, metricsManager *metrics.Manager) *CachedStore {
	return &CachedStore{
		store:          store,
		cache:          freecache.NewCache(sizeMB * 1024 * 1024),
		ttlSeconds:     ttlSeconds,
		metricsManager: metricsManager,
	}
}

func cacheKey(group units.Group) []byte {
	return []byte("presets:" + group.String())
}

func (c *CachedStore) countLookup(result string) {
	if c.metricsManager != nil {
		c.metricsManager.CounterPresetCache.WithLabelValues(result).Inc()
	}
}

func (c *CachedStore) List(ctx context.Context, group units.Group) ([]sumcalc.Preset, error) {
	key := cacheKey(group)

	cached, err := c.cache.Get(key)
	if err == nil {
		var list []sumcalc.Preset
		if err := json.Unmarshal(cached, &list); err == nil {
			c.countLookup("hit")
			return list, nil
		}
		log.Warnf("drop corrupted preset cache entry [%s]", key)
		c.cache.Del(key)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("preset cache get [%s]: %s", key, err)
	}
	c.countLookup("miss")

	list, err := c.store.List(ctx, group)
	if err != nil {
		return nil, err
	}

	listBytes, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal presets: %w", err)
	}
	if err := c.cache.Set(key, listBytes, c.ttlSeconds); err != nil {
		// e.g. the entry is larger than 1/1024 of the cache
		log.Warnf("preset cache set [%s]: %s", key, err)
	}

	return list, nil
}

func (c *CachedStore) Get(ctx context.Context, group units.Group, id int64) (sumcalc.Preset, error) {
	list, err := c.List(ctx, group)
	if err != nil {
		return sumcalc.Preset{}, err
	}
	if p, ok := sumcalc.NewPresetLookup(list).Lookup(id); ok {
		return p, nil
	}
	return sumcalc.Preset{}, ErrPresetNotFound
}

func (c *CachedStore) Add(ctx context.Context, preset sumcalc.Preset) (sumcalc.Preset, error) {
	added, err := c.store.Add(ctx, preset)
	if err != nil {
		return sumcalc.Preset{}, err
	}
	c.cache.Del(cacheKey(preset.Group))
	return added, nil
}

func (c *CachedStore) Delete(ctx context.Context, group units.Group, id int64) error {
	if err := c.store.Delete(ctx, group, id); err != nil {
		return err
	}
	c.cache.Del(cacheKey(group))
	return nil
}
