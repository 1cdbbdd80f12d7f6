package wiki

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache keeps recently fetched pages in process, in front of an
// optional persistent cache. Club pages are read by both the player and the
// coach stage of a single run.
type MemoryCache struct {
	lru  *expirable.LRU[string, []byte]
	next Cache
}

// NewMemoryCache holds at most `size` pages for `ttl`, `next` may be nil.
func NewMemoryCache(size int, ttl time.Duration, next Cache) MemoryCache {
	return MemoryCache{
		lru:  expirable.NewLRU[string, []byte](size, nil, ttl),
		next: next,
	}
}

func (c MemoryCache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	key, err := cacheKey(url)
	if err != nil {
		return nil, false, err
	}
	body, ok := c.lru.Get(key)
	if ok {
		return body, true, nil
	}
	if c.next == nil {
		return nil, false, nil
	}

	body, ok, err = c.next.Get(ctx, url)
	if err != nil || !ok {
		return nil, false, err
	}
	c.lru.Add(key, body)
	return body, true, nil
}

func (c MemoryCache) Put(ctx context.Context, url string, body []byte) error {
	key, err := cacheKey(url)
	if err != nil {
		return err
	}
	c.lru.Add(key, body)
	if c.next == nil {
		return nil
	}
	return c.next.Put(ctx, url, body)
}
