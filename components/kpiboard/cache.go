package kpiboard

import (
	"encoding/json"
	"sync"
)

const (
	layoutKeySuffix      = "-dashboard-layouts"
	chartConfigKeySuffix = "-dashboard-chart-config"
)

// LayoutCacheKey names the local cache entry holding a department's layout.
func LayoutCacheKey(dept string) string {
	return dept + layoutKeySuffix
}

// ChartConfigCacheKey names the local cache entry holding a department's
// chart configuration.
func ChartConfigCacheKey(dept string) string {
	return dept + chartConfigKeySuffix
}

// MemoryCache is a concurrency-safe in-process LocalCache. It is the default
// used when a Board is constructed without one; file- or storage-backed
// implementations satisfy the same interface.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte)}
}

// Get returns the stored value for key, if any.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), value...), true
}

// Set stores value under key, replacing any previous entry.
func (c *MemoryCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = append([]byte(nil), value...)
}

// Delete removes the entry for key.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// WipeDepartments clears the layout and chart-config cache entries for the
// given department slugs. With no slugs it wipes every known department —
// the logout path.
func WipeDepartments(cache LocalCache, slugs ...string) {
	if cache == nil {
		return
	}
	if len(slugs) == 0 {
		slugs = AllDepartmentSlugs()
	}
	for _, slug := range slugs {
		cache.Delete(LayoutCacheKey(slug))
		cache.Delete(ChartConfigCacheKey(slug))
	}
}

func cacheLayout(cache LocalCache, dept string, layout GridLayout) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(layout)
	if err != nil {
		return
	}
	cache.Set(LayoutCacheKey(dept), data)
}

func cachedLayout(cache LocalCache, dept string) (GridLayout, bool) {
	if cache == nil {
		return nil, false
	}
	data, ok := cache.Get(LayoutCacheKey(dept))
	if !ok {
		return nil, false
	}
	var layout GridLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, false
	}
	return layout, true
}

func cacheChartConfig(cache LocalCache, dept string, cfg ChartConfiguration) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	cache.Set(ChartConfigCacheKey(dept), data)
}

func cachedChartConfig(cache LocalCache, dept string) (ChartConfiguration, bool) {
	if cache == nil {
		return nil, false
	}
	data, ok := cache.Get(ChartConfigCacheKey(dept))
	if !ok {
		return nil, false
	}
	var cfg ChartConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, false
	}
	return cfg, true
}
