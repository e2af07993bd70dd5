package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML. Chart providers hit the Admin API
// and run go-echarts on every fetch, so page loads share one cache.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is the in-memory RenderCache used by the echarts providers.
// Entries expire after the configured TTL; a zero TTL disables caching.
type ChartCache struct {
	ttl    time.Duration
	mu     sync.RWMutex
	charts map[string]chartEntry
}

type chartEntry struct {
	html    string
	staleAt time.Time
}

// NewChartCache builds a cache whose entries live for ttl.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:    ttl,
		charts: make(map[string]chartEntry),
	}
}

// GetOrRender returns the cached HTML for key, rendering and storing it on a
// miss. Render errors are returned to the caller and nothing is cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.store(key, html)
	return html, nil
}

func (c *ChartCache) lookup(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	now := time.Now()
	c.mu.RLock()
	entry, ok := c.charts[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.staleAt) {
		return entry.html, true
	}
	if ok {
		c.mu.Lock()
		delete(c.charts, key)
		c.mu.Unlock()
	}
	return "", false
}

func (c *ChartCache) store(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	entry := chartEntry{html: html, staleAt: time.Now().Add(c.ttl)}
	c.mu.Lock()
	c.charts[key] = entry
	c.mu.Unlock()
}

// configHash folds a widget configuration into a stable cache-key segment so
// two instances of the same chart with different settings never collide.
func configHash(cfg map[string]any) string {
	if len(cfg) == 0 {
		return "empty"
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
