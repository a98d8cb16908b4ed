package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Gap reports are derived data; a short TTL keeps dashboards fresh while
	// amenity writes invalidate explicitly.
	gapCacheDuration     = 10 * time.Minute
	gapCleanupInterval   = 30 * time.Minute
	statsCacheDuration   = 5 * time.Minute
	statsCleanupInterval = 15 * time.Minute
)

// Caches bundles the in-process caches handed to the HTTP layer.
type Caches struct {
	Gaps  *cache.Cache
	Stats *cache.Cache
}

func NewCaches() *Caches {
	return &Caches{
		Gaps:  cache.New(gapCacheDuration, gapCleanupInterval),
		Stats: cache.New(statsCacheDuration, statsCleanupInterval),
	}
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
