package crawler

import (
	"io"
	"strings"
	"time"

	"kenyadeals/dealworker/config"
)

// mockCacheService is an in-memory cache.CacheService for testing
type mockCacheService struct {
	data map[string][]byte
}

func newMockCacheService() *mockCacheService {
	return &mockCacheService{
		data: make(map[string][]byte),
	}
}

func (m *mockCacheService) Get(key string) ([]byte, error) {
	if data, ok := m.data[key]; ok {
		return data, nil
	}
	return nil, io.EOF
}

func (m *mockCacheService) Set(key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCacheService) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// mockFetcher serves fixed page bodies keyed by URL; unknown URLs or
// URLs mapped to an error fail the fetch
type mockFetcher struct {
	pages map[string]string
	fails map[string]error
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		pages: make(map[string]string),
		fails: make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(pageURL string) (io.Reader, error) {
	if err, ok := m.fails[pageURL]; ok {
		return nil, err
	}
	if body, ok := m.pages[pageURL]; ok {
		return strings.NewReader(body), nil
	}
	return nil, io.ErrUnexpectedEOF
}

// testClassifier builds a classifier with the default keyword sets
func testClassifier() *Classifier {
	return NewClassifier(config.DefaultKeywords())
}
