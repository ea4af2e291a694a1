package stockai

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Suggester fetches autocomplete suggestions for a prefix.
type Suggester interface {
	Autocomplete(ctx context.Context, prefix string) ([]Suggestion, error)
}

type suggestEntry struct {
	expiresAt   time.Time
	suggestions []Suggestion
}

// SuggestionCache caches autocomplete results per prefix for a TTL and
// enforces a minimum interval between backend calls, so rapid typing does
// not hammer the backend. Concurrent refreshes of the same prefix are
// coalesced. On a refresh failure a stale entry is served when available.
type SuggestionCache struct {
	S           Suggester
	TTL         time.Duration
	MinInterval time.Duration
	MaxItems    int

	mu    sync.Mutex
	items map[string]suggestEntry
	last  time.Time

	sf singleflight.Group
}

func (c *SuggestionCache) Autocomplete(ctx context.Context, prefix string) ([]Suggestion, error) {
	key := strings.ToLower(strings.TrimSpace(prefix))
	if key == "" || c.TTL <= 0 {
		return c.S.Autocomplete(ctx, prefix)
	}

	now := time.Now()
	c.mu.Lock()
	e, ok := c.items[key]
	if ok && now.Before(e.expiresAt) {
		c.mu.Unlock()
		return e.suggestions, nil
	}
	if c.MinInterval > 0 && now.Sub(c.last) < c.MinInterval {
		// Too soon for another backend call; suggestions are best-effort,
		// so degrade to whatever we have.
		c.mu.Unlock()
		return e.suggestions, nil
	}
	c.last = now
	c.mu.Unlock()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		return c.S.Autocomplete(ctx, prefix)
	})
	if err != nil {
		if ok {
			return e.suggestions, nil
		}
		return nil, err
	}
	fresh := v.([]Suggestion)

	c.mu.Lock()
	if c.items == nil {
		c.items = make(map[string]suggestEntry)
	}
	c.items[key] = suggestEntry{expiresAt: time.Now().Add(c.TTL), suggestions: fresh}
	if c.MaxItems > 0 && len(c.items) > c.MaxItems {
		for k := range c.items {
			if len(c.items) <= c.MaxItems {
				break
			}
			if k == key {
				continue
			}
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
	return fresh, nil
}
