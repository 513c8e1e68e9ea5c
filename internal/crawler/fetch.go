package crawler

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"kenyadeals/dealworker/helpers"
	"kenyadeals/dealworker/services/cache"
)

// Fetcher retrieves the raw markup for a URL. How the markup is
// obtained is the fetcher's concern; crawlers only see a reader or an
// error.
type Fetcher interface {
	Fetch(pageURL string) (io.Reader, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(pageURL string) (io.Reader, error)

func (f FetcherFunc) Fetch(pageURL string) (io.Reader, error) {
	return f(pageURL)
}

// CachedFetcher fetches pages over HTTP with a per-host rate-limit
// blockout: when a host answers 429, further fetches to it are blocked
// for BlockTime. With a nil cache it degrades to plain fetching.
type CachedFetcher struct {
	CacheSvc  cache.CacheService
	BlockTime time.Duration
}

// NewCachedFetcher creates a fetcher with the given blockout cache
func NewCachedFetcher(cacheSvc cache.CacheService, blockTime time.Duration) *CachedFetcher {
	return &CachedFetcher{
		CacheSvc:  cacheSvc,
		BlockTime: blockTime,
	}
}

// Fetch retrieves a page, honoring any active rate-limit blockout
func (f *CachedFetcher) Fetch(pageURL string) (io.Reader, error) {
	key := blockKey(pageURL)

	if f.CacheSvc != nil && key != "" {
		if _, err := f.CacheSvc.Get(key); err == nil {
			return nil, fmt.Errorf("%s: blocked for %d seconds after rate limiting", key, int(f.BlockTime/time.Second))
		}
	}

	body, err := helpers.FetchWithRandomHeaders(pageURL)
	if err != nil {
		if f.CacheSvc != nil && key != "" && strings.HasPrefix(err.Error(), "rate limited") {
			f.CacheSvc.Set(key, []byte(fmt.Sprintf("%d", int(f.BlockTime/time.Second))), f.BlockTime)
		}
		return nil, err
	}

	return body, nil
}

// blockKey derives the rate-limit cache key from the page's host
func blockKey(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return "fetch_block:" + u.Host
}
