package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheFamilies(t *testing.T) {
	require.NoError(t, InitCache())
	t.Cleanup(func() {
		Cache.Close()
		Cache = nil
	})

	require.True(t, SetCache(MetricsCache, "metrics:2024-03-10", 42, CacheVersion(MetricsCache)))
	require.True(t, SetCache(RenewalsCache, "renewals:2024-03-10:90", "r", CacheVersion(RenewalsCache)))

	v, ok := GetCache("metrics:2024-03-10")
	require.True(t, ok)
	require.Equal(t, 42, v)

	ClearCache(MetricsCache)
	_, ok = GetCache("metrics:2024-03-10")
	require.False(t, ok)
	_, ok = GetCache("renewals:2024-03-10:90")
	require.True(t, ok)

	ClearAllCaches()
	_, ok = GetCache("renewals:2024-03-10:90")
	require.False(t, ok)
}

func TestCacheNilIsMiss(t *testing.T) {
	saved := Cache
	Cache = nil
	t.Cleanup(func() { Cache = saved })

	require.False(t, SetCache(MetricsCache, "k", 1, CacheVersion(MetricsCache)))
	_, ok := GetCache("k")
	require.False(t, ok)
	ClearAllCaches()
}

func TestSetCacheAfterClearIsDropped(t *testing.T) {
	require.NoError(t, InitCache())
	t.Cleanup(func() {
		Cache.Close()
		Cache = nil
	})

	metricsVersion := CacheVersion(MetricsCache)
	renewalsVersion := CacheVersion(RenewalsCache)
	ClearCache(MetricsCache)

	require.False(t, SetCache(MetricsCache, "metrics:2024-03-10", "stale", metricsVersion))
	_, ok := GetCache("metrics:2024-03-10")
	require.False(t, ok)

	require.True(t, SetCache(RenewalsCache, "renewals:2024-03-10:90", "fresh", renewalsVersion))
	require.True(t, SetCache(MetricsCache, "metrics:2024-03-10", "fresh", CacheVersion(MetricsCache)))
	v, ok := GetCache("metrics:2024-03-10")
	require.True(t, ok)
	require.Equal(t, "fresh", v)
}

func TestIsCacheFamily(t *testing.T) {
	require.True(t, IsCacheFamily(MetricsCache))
	require.True(t, IsCacheFamily(RenewalsCache))
	require.False(t, IsCacheFamily("transactions"))
}
