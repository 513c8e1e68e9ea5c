package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"kenyadeals/dealworker/internal/crawler"
	"kenyadeals/dealworker/services/publisher"

	"github.com/stretchr/testify/assert"
)

// MockCrawler implements the crawler.Crawler interface for testing
type MockCrawler struct {
	name     string
	products []crawler.Product
}

// Ensure MockCrawler implements crawler.Crawler
var _ crawler.Crawler = (*MockCrawler)(nil)

func (m *MockCrawler) FetchProducts() []crawler.Product {
	return m.products
}

func (m *MockCrawler) GetName() string {
	return m.name
}

// MockPublisher implements the publisher.Publisher interface for testing
type MockPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	trimmed  bool
	fail     error
}

// Ensure MockPublisher implements publisher.Publisher
var _ publisher.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(shop string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	messageCopy := make([]byte, len(message))
	copy(messageCopy, message)
	m.messages = append(m.messages, messageCopy)
	return nil
}

func (m *MockPublisher) TrimStream() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trimmed = true
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

func testProducts() []crawler.Product {
	return []crawler.Product{
		{Shop: "Jumia Kenya", Name: "Infinix Hot 30", Category: crawler.CategoryPhone, CurrentPrice: 9200},
		{Shop: "Jumia Kenya", Name: "Tecno Spark 10", Category: crawler.CategoryPhone, CurrentPrice: 8500},
	}
}

func TestWorkerRunCycle(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "deals.json")
	reportPath := filepath.Join(dir, "index.html")

	crawlers := []crawler.Crawler{
		&MockCrawler{name: "Jumia Kenya", products: testProducts()},
		&MockCrawler{name: "Kilimall", products: []crawler.Product{
			{Shop: "Kilimall", Name: "Itel A60s Phone", Category: crawler.CategoryPhone, CurrentPrice: 3000},
		}},
	}

	pub := &MockPublisher{}
	w := NewWorker(context.Background(), crawlers, pub, outputPath, reportPath, time.Minute, true)

	snapshot := w.RunCycle()
	assert.Equal(t, 3, snapshot.TotalItems)

	// Sorted ascending by price across shops
	assert.Equal(t, float64(3000), snapshot.Items[0].CurrentPrice)
	assert.Equal(t, float64(8500), snapshot.Items[1].CurrentPrice)
	assert.Equal(t, float64(9200), snapshot.Items[2].CurrentPrice)

	// Artifacts written
	data, err := os.ReadFile(outputPath)
	assert.NoError(t, err)
	var decoded crawler.Snapshot
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.TotalItems)

	html, err := os.ReadFile(reportPath)
	assert.NoError(t, err)
	assert.Contains(t, string(html), "Itel A60s Phone")

	// Every accepted product published, stream trimmed
	assert.Len(t, pub.messages, 3)
	assert.True(t, pub.trimmed)
}

func TestWorkerRunCycleDeduplicates(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "deals.json")

	// The same (name, price, shop) from two pages of one shop
	duplicate := crawler.Product{Shop: "Jumia Kenya", Name: "Tecno Spark 10", Category: crawler.CategoryPhone, CurrentPrice: 8500}
	crawlers := []crawler.Crawler{
		&MockCrawler{name: "Jumia Kenya", products: []crawler.Product{duplicate, duplicate}},
	}

	w := NewWorker(context.Background(), crawlers, nil, outputPath, "", time.Minute, true)
	snapshot := w.RunCycle()
	assert.Equal(t, 1, snapshot.TotalItems)
}

func TestWorkerRunCycleNoProducts(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "deals.json")

	crawlers := []crawler.Crawler{
		&MockCrawler{name: "Jumia Kenya"},
	}

	// The worst case is a zero-item artifact, never a failed run
	w := NewWorker(context.Background(), crawlers, nil, outputPath, "", time.Minute, true)
	snapshot := w.RunCycle()
	assert.Equal(t, 0, snapshot.TotalItems)

	_, err := os.Stat(outputPath)
	assert.NoError(t, err)
}

func TestWorkerPublishFailureDoesNotAbort(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "deals.json")

	crawlers := []crawler.Crawler{
		&MockCrawler{name: "Jumia Kenya", products: testProducts()},
	}

	pub := &MockPublisher{fail: errors.New("connection refused")}
	w := NewWorker(context.Background(), crawlers, pub, outputPath, "", time.Minute, true)

	snapshot := w.RunCycle()
	assert.Equal(t, 2, snapshot.TotalItems)

	// The artifact is still written when publishing fails
	_, err := os.Stat(outputPath)
	assert.NoError(t, err)
}

func TestWorkerStartRunOnce(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "deals.json")

	w := NewWorker(context.Background(), []crawler.Crawler{
		&MockCrawler{name: "Jumia Kenya", products: testProducts()},
	}, nil, outputPath, "", time.Minute, true)

	done := make(chan error, 1)
	go func() { done <- w.Start() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run-once worker did not exit")
	}
}

func TestWorkerStartCancelled(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "deals.json")

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorker(ctx, []crawler.Crawler{
		&MockCrawler{name: "Jumia Kenya"},
	}, nil, outputPath, "", time.Hour, false)

	done := make(chan error, 1)
	go func() { done <- w.Start() }()

	// Cancel while the worker waits out the interval
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
