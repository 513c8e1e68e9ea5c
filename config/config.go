package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Shop describes one e-commerce site to crawl
type Shop struct {
	// ID selects the selector profile for this shop; unknown IDs fall
	// back to the generic profile
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	BaseURL      string   `yaml:"baseUrl"`
	FlashSaleURL string   `yaml:"flashSaleUrl"`
	CategoryURLs []string `yaml:"categoryUrls"`
}

// PageURLs returns the flash sale URL followed by the category URLs,
// in crawl order. Empty entries are skipped.
func (s Shop) PageURLs() []string {
	var urls []string
	if s.FlashSaleURL != "" {
		urls = append(urls, s.FlashSaleURL)
	}
	for _, u := range s.CategoryURLs {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Keywords holds the category keyword sets
type Keywords struct {
	Phone  []string `yaml:"phone"`
	Laptop []string `yaml:"laptop"`
}

// Config represents the application configuration
type Config struct {
	// Filtering
	MaxPrice   float64
	PriceFloor float64

	// Shops and classification
	Shops    []Shop
	Keywords Keywords

	// Output artifacts
	OutputPath string
	ReportPath string

	// Scheduling
	RunOnce       bool
	CrawlInterval time.Duration

	// Redis configuration (empty addr disables publishing)
	RedisAddr         string
	RedisDB           int
	RedisStream       string
	RedisStreamMaxLen int

	// Memcache configuration (empty addr disables the fetch blockout)
	MemcacheAddr   string
	FetchBlockTime time.Duration

	// Environment
	Environment string
}

// shopsFile is the shape of the optional YAML config file
type shopsFile struct {
	MaxPrice   float64  `yaml:"maxPrice"`
	PriceFloor float64  `yaml:"priceFloor"`
	Shops      []Shop   `yaml:"shops"`
	Keywords   Keywords `yaml:"categoryKeywords"`
}

// LoadConfig loads the configuration from environment variables with
// defaults, then applies the YAML shops file if SHOPS_FILE is set
func LoadConfig() (*Config, error) {
	maxPrice, _ := strconv.ParseFloat(getEnv("MAX_PRICE", "10000"), 64)
	priceFloor, _ := strconv.ParseFloat(getEnv("PRICE_FLOOR", "100"), 64)
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "3600"))
	blockTime, _ := strconv.Atoi(getEnv("FETCH_BLOCK_SECONDS", "500"))
	runOnce, _ := strconv.ParseBool(getEnv("RUN_ONCE", "true"))

	cfg := &Config{
		MaxPrice:          maxPrice,
		PriceFloor:        priceFloor,
		Shops:             DefaultShops(),
		Keywords:          DefaultKeywords(),
		OutputPath:        getEnv("OUTPUT_PATH", "data/deals.json"),
		ReportPath:        getEnv("REPORT_PATH", "docs/index.html"),
		RunOnce:           runOnce,
		CrawlInterval:     time.Duration(crawlInterval) * time.Second,
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisDB:           redisDB,
		RedisStream:       getEnv("REDIS_STREAM", "deals"),
		RedisStreamMaxLen: streamMaxLen,
		MemcacheAddr:      getEnv("MEMCACHE_ADDR", ""),
		FetchBlockTime:    time.Duration(blockTime) * time.Second,
		Environment:       getEnv("DEALS_ENVIRONMENT", "development"),
	}

	if path := os.Getenv("SHOPS_FILE"); path != "" {
		if err := cfg.applyShopsFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyShopsFile overrides shop and keyword configuration from a YAML file
func (c *Config) applyShopsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read shops file %s: %w", path, err)
	}

	var file shopsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse shops file %s: %w", path, err)
	}

	if file.MaxPrice > 0 {
		c.MaxPrice = file.MaxPrice
	}
	if file.PriceFloor > 0 {
		c.PriceFloor = file.PriceFloor
	}
	if len(file.Shops) > 0 {
		c.Shops = file.Shops
	}
	if len(file.Keywords.Phone) > 0 {
		c.Keywords.Phone = file.Keywords.Phone
	}
	if len(file.Keywords.Laptop) > 0 {
		c.Keywords.Laptop = file.Keywords.Laptop
	}

	return nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.PriceFloor <= 0 {
		return fmt.Errorf("price floor must be positive, got %v", c.PriceFloor)
	}
	if c.MaxPrice <= c.PriceFloor {
		return fmt.Errorf("max price %v must be above the price floor %v", c.MaxPrice, c.PriceFloor)
	}
	if len(c.Shops) == 0 {
		return fmt.Errorf("no shops configured")
	}
	for _, shop := range c.Shops {
		if shop.Name == "" {
			return fmt.Errorf("shop with id %q has no name", shop.ID)
		}
		if _, err := url.ParseRequestURI(shop.BaseURL); err != nil {
			return fmt.Errorf("shop %s has invalid base URL %q: %w", shop.Name, shop.BaseURL, err)
		}
		if len(shop.PageURLs()) == 0 {
			return fmt.Errorf("shop %s has no page URLs", shop.Name)
		}
	}
	if len(c.Keywords.Phone) == 0 && len(c.Keywords.Laptop) == 0 {
		return fmt.Errorf("no category keywords configured")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is empty")
	}
	return nil
}

// DefaultShops returns the built-in shop list
func DefaultShops() []Shop {
	return []Shop{
		{
			ID:           "jumia",
			Name:         "Jumia Kenya",
			BaseURL:      "https://www.jumia.co.ke",
			FlashSaleURL: "https://www.jumia.co.ke/flash-sales/",
			CategoryURLs: []string{
				"https://www.jumia.co.ke/smartphones/",
				"https://www.jumia.co.ke/laptops/",
			},
		},
		{
			ID:           "kilimall",
			Name:         "Kilimall",
			BaseURL:      "https://www.kilimall.co.ke",
			FlashSaleURL: "https://www.kilimall.co.ke/flash-sale",
			CategoryURLs: []string{
				"https://www.kilimall.co.ke/category/mobile-phones",
				"https://www.kilimall.co.ke/category/laptops",
			},
		},
	}
}

// DefaultKeywords returns the built-in category keyword sets
func DefaultKeywords() Keywords {
	return Keywords{
		Phone: []string{
			"phone", "smartphone", "iphone", "galaxy",
			"tecno", "infinix", "itel", "samsung", "xiaomi", "redmi",
			"oppo", "vivo", "realme", "nokia", "huawei",
		},
		Laptop: []string{
			"laptop", "notebook", "macbook", "chromebook",
			"thinkpad", "ideapad", "elitebook", "probook", "pavilion",
			"inspiron", "latitude", "vivobook", "aspire",
		},
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
