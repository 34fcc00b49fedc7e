package perfcache

import (
	"context"
	"sync"
	"time"

	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"
	"routing/internal/core/ports"
)

// DefaultTTL is the cache lifetime applied when the caller does not pick one.
// Routing tolerates snapshots up to this stale.
const DefaultTTL = 5 * time.Minute

type cacheKey struct {
	carrierID kernel.UUID
	zone      kernel.Zone
}

type cacheEntry struct {
	performance carrier.Performance
	expiresAt   time.Time
}

// Cache is a TTL cache in front of another PerformanceProvider. It is safe
// for concurrent use; concurrent misses on the same key may each hit the
// delegate, which is acceptable since derivation is idempotent.
type Cache struct {
	delegate ports.PerformanceProvider
	ttl      time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
}

// NewCache wraps delegate with a TTL cache. A non-positive ttl falls back to
// DefaultTTL; a nil now falls back to time.Now.
func NewCache(delegate ports.PerformanceProvider, ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		delegate: delegate,
		ttl:      ttl,
		now:      now,
		entries:  make(map[cacheKey]cacheEntry),
	}
}

// Performance returns the cached snapshot when fresh, otherwise reloads from
// the delegate. Delegate failures are never cached.
func (c *Cache) Performance(
	ctx context.Context,
	carrierID kernel.UUID,
	zone kernel.Zone,
) (carrier.Performance, error) {
	key := cacheKey{carrierID: carrierID, zone: zone}
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.performance, nil
	}

	performance, err := c.delegate.Performance(ctx, carrierID, zone)
	if err != nil {
		return carrier.Performance{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{performance: performance, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()

	return performance, nil
}

// Invalidate drops the cached snapshot for one (carrier, zone) pair.
func (c *Cache) Invalidate(carrierID kernel.UUID, zone kernel.Zone) {
	c.mu.Lock()
	delete(c.entries, cacheKey{carrierID: carrierID, zone: zone})
	c.mu.Unlock()
}
