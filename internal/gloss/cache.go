package gloss

import "sync"

// Cache memoises Decode per raw token. Tokens repeat across a document and
// are decoded again on every render, so renderers share one Cache.
// A Cache is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	signs map[string]Sign
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{signs: make(map[string]Sign)}
}

// Decode returns the decoded sign for token, decoding it on first use.
func (c *Cache) Decode(token string) Sign {
	c.mu.RLock()
	sign, ok := c.signs[token]
	c.mu.RUnlock()
	if !ok {
		sign = Decode(token)
		c.mu.Lock()
		c.signs[token] = sign
		c.mu.Unlock()
	}
	return sign.clone()
}

// Len returns the number of distinct tokens decoded so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.signs)
}

func (s Sign) clone() Sign {
	parts := make([]string, len(s.Parts))
	copy(parts, s.Parts)
	s.Parts = parts
	return s
}
