package crawler

import "time"

// Category is the closed product classification
type Category string

const (
	CategoryPhone  Category = "phone"
	CategoryLaptop Category = "laptop"
)

// UnknownProductName is the sentinel used when name extraction fails
const UnknownProductName = "Unknown Product"

// Product represents one scraped product record
type Product struct {
	Shop          string    `json:"shop"`
	Name          string    `json:"name"`
	Category      Category  `json:"category"`
	CurrentPrice  float64   `json:"currentPrice"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      string    `json:"discount"`
	URL           string    `json:"url"`
	ImageURL      string    `json:"imageUrl"`
	Timestamp     time.Time `json:"timestamp"`
}

// Snapshot is the output artifact: a full replacement of any prior data
type Snapshot struct {
	Timestamp  time.Time `json:"timestamp"`
	TotalItems int       `json:"totalItems"`
	Items      []Product `json:"items"`
}

// Crawler defines the contract for all shop crawler implementations
type Crawler interface {
	// FetchProducts crawls the shop's pages and returns accepted
	// products. Page failures are logged and never abort the crawl.
	FetchProducts() []Product

	// GetName returns the shop name for logging and identification
	GetName() string
}

// SelectorProfile contains CSS selectors for the fields of a product
// listing. Each field is a prioritized list; the first selector with a
// match wins. Shop-specific profiles usually carry a single entry per
// field, the generic fallback carries several.
type SelectorProfile struct {
	ProductList   []string
	Name          []string
	CurrentPrice  []string
	OriginalPrice []string
	Link          []string
	Image         []string
}

// Skips counts candidates dropped by the acceptance gate. Dropping is
// normal filtering, not an error; the counts exist for diagnostics.
type Skips struct {
	NoName       int
	NoPrice      int
	Unclassified int
	OverCeiling  int
}

// Total returns the number of gated-out candidates
func (s Skips) Total() int {
	return s.NoName + s.NoPrice + s.Unclassified + s.OverCeiling
}

// PageResult is the outcome of extracting one listing page
type PageResult struct {
	// Candidates are independently built product records, before the
	// acceptance gate
	Candidates []Product

	// Faults counts candidates skipped because their markup fragment
	// could not be processed
	Faults int
}
