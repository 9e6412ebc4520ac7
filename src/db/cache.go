package db

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Cache families. Keys are tracked per family so a write can drop every cached
// response of a kind without flushing the whole cache.
const (
	MetricsCache  = "metrics"
	RenewalsCache = "renewals"
)

type keySet struct {
	sync.RWMutex
	m map[string]struct{}
	// version is bumped by every clear of the family.
	version uint64
}

var (
	Cache     *ristretto.Cache
	cacheKeys = map[string]*keySet{
		MetricsCache:  {m: make(map[string]struct{})},
		RenewalsCache: {m: make(map[string]struct{})},
	}
)

func InitCache() error {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

func IsCacheFamily(name string) bool {
	_, ok := cacheKeys[name]
	return ok
}

// GetCache is a miss when the cache was never initialized.
func GetCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

// CacheVersion reports the current version of family. Read it before
// querying the database and pass it to SetCache.
func CacheVersion(family string) uint64 {
	keys, ok := cacheKeys[family]
	if !ok {
		return 0
	}
	keys.RLock()
	defer keys.RUnlock()
	return keys.version
}

// SetCache stores value only if family has not been cleared since version
// was read, so a slow read racing a write cannot cache stale data.
func SetCache(family, cacheKey string, value interface{}, version uint64) bool {
	keys, ok := cacheKeys[family]
	if Cache == nil || !ok {
		return false
	}
	keys.Lock()
	defer keys.Unlock()
	if keys.version != version {
		return false
	}
	keys.m[cacheKey] = struct{}{}
	Cache.Set(cacheKey, value, 1)
	Cache.Wait()
	return true
}

func ClearCache(family string) {
	keys, ok := cacheKeys[family]
	if !ok {
		return
	}
	keys.Lock()
	defer keys.Unlock()
	keys.version++
	if Cache == nil {
		return
	}
	for key := range keys.m {
		Cache.Del(key)
	}
	keys.m = make(map[string]struct{})
}

func ClearAllCaches() {
	for family := range cacheKeys {
		ClearCache(family)
	}
}
