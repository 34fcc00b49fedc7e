package perfcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"routing/internal/adapters/out/perfcache"
	"routing/internal/core/domain/model/carrier"
	"routing/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Performance(
	_ context.Context,
	carrierID kernel.UUID,
	zone kernel.Zone,
) (carrier.Performance, error) {
	p.calls++
	if p.err != nil {
		return carrier.Performance{}, p.err
	}
	return carrier.Performance{
		CarrierID:   carrierID,
		Zone:        zone,
		Reliability: float64(p.calls), // distinguishes reloads from cache hits
		SampleCount: 10,
	}, nil
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestCache_ServesFreshEntriesWithoutReload(t *testing.T) {
	provider := &countingProvider{}
	clock := &fakeClock{current: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	cache := perfcache.NewCache(provider, time.Minute, clock.now)
	carrierID := kernel.NewUUID()

	first, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)

	clock.advance(30 * time.Second)
	second, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, first, second)
}

func TestCache_ReloadsAfterTTL(t *testing.T) {
	provider := &countingProvider{}
	clock := &fakeClock{current: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	cache := perfcache.NewCache(provider, time.Minute, clock.now)
	carrierID := kernel.NewUUID()

	_, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)

	clock.advance(time.Minute)
	reloaded, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
	assert.InDelta(t, 2, reloaded.Reliability, 1e-9)
}

func TestCache_KeysByCarrierAndZone(t *testing.T) {
	provider := &countingProvider{}
	clock := &fakeClock{current: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	cache := perfcache.NewCache(provider, time.Minute, clock.now)
	carrierID := kernel.NewUUID()

	_, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)
	_, err = cache.Performance(context.Background(), carrierID, kernel.ZoneLocal)
	require.NoError(t, err)
	_, err = cache.Performance(context.Background(), kernel.NewUUID(), kernel.ZoneMetro)
	require.NoError(t, err)

	assert.Equal(t, 3, provider.calls)
}

func TestCache_DoesNotCacheFailures(t *testing.T) {
	provider := &countingProvider{err: errors.New("storage down")}
	clock := &fakeClock{current: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	cache := perfcache.NewCache(provider, time.Minute, clock.now)
	carrierID := kernel.NewUUID()

	_, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.Error(t, err)

	provider.err = nil
	recovered, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, carrierID, recovered.CarrierID)
}

func TestCache_Invalidate(t *testing.T) {
	provider := &countingProvider{}
	clock := &fakeClock{current: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	cache := perfcache.NewCache(provider, time.Minute, clock.now)
	carrierID := kernel.NewUUID()

	_, err := cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)

	cache.Invalidate(carrierID, kernel.ZoneMetro)

	_, err = cache.Performance(context.Background(), carrierID, kernel.ZoneMetro)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}
