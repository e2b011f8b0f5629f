// Package cache provides caching utilities for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/callsight-mcp/pkg/classify"
)

// ResultCache memoizes classification results keyed by role and payload.
// Classification is deterministic, so a hit is always safe to reuse.
type ResultCache struct {
	cache *lru.Cache[string, *classify.Result]
}

// NewResultCache creates an LRU cache holding at most maxItems results.
func NewResultCache(maxItems int) (*ResultCache, error) {
	c, err := lru.New[string, *classify.Result](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// Key derives the cache key for one payload in one role.
func Key(role, payload string) string {
	h := sha256.New()
	h.Write([]byte(role))
	h.Write([]byte{0})
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *ResultCache) Get(key string) (*classify.Result, bool) {
	return c.cache.Get(key)
}

func (c *ResultCache) Put(key string, res *classify.Result) {
	c.cache.Add(key, res)
}

func (c *ResultCache) Len() int {
	return c.cache.Len()
}
