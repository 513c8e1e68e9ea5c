package crawler

import (
	"github.com/PuerkitoBio/goquery"

	"kenyadeals/dealworker/config"
	"kenyadeals/dealworker/logger"
	"kenyadeals/dealworker/pkg/errors"
)

// ShopCrawler crawls one shop's listing pages in sequence: the flash
// sale page first, then the category pages. A failed page contributes
// zero products and never aborts the remaining pages.
type ShopCrawler struct {
	shop      config.Shop
	extractor *PageExtractor
	fetcher   Fetcher
	maxPrice  float64
	log       *logger.Logger
}

// NewShopCrawler creates a crawler for one shop
func NewShopCrawler(shop config.Shop, extractor *PageExtractor, fetcher Fetcher, maxPrice float64) *ShopCrawler {
	return &ShopCrawler{
		shop:      shop,
		extractor: extractor,
		fetcher:   fetcher,
		maxPrice:  maxPrice,
		log:       logger.ForShop(shop.Name),
	}
}

// GetName returns the shop name
func (c *ShopCrawler) GetName() string {
	return c.shop.Name
}

// FetchProducts crawls all pages of the shop and returns the accepted
// products. It never returns an error; failures are logged per page.
func (c *ShopCrawler) FetchProducts() []Product {
	var accepted []Product

	for _, pageURL := range c.shop.PageURLs() {
		products := c.crawlPage(pageURL)
		accepted = append(accepted, products...)
	}

	c.log.Info().
		Int("accepted", len(accepted)).
		Msg("Shop crawl finished")

	return accepted
}

// crawlPage fetches and extracts a single listing page
func (c *ShopCrawler) crawlPage(pageURL string) []Product {
	body, err := c.fetcher.Fetch(pageURL)
	if err != nil {
		c.log.Warn().
			Err(errors.NewNetwork(c.shop.Name, "page fetch failed", err)).
			Str("url", pageURL).
			Msg("Skipping page")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		c.log.Warn().
			Err(errors.NewParsing(c.shop.Name, "page parse failed", err)).
			Str("url", pageURL).
			Msg("Skipping page")
		return nil
	}

	result := c.extractor.Extract(doc)
	products, skips := Screen(result.Candidates, c.maxPrice)

	c.log.Debug().
		Str("url", pageURL).
		Int("candidates", len(result.Candidates)).
		Int("accepted", len(products)).
		Int("skipped", skips.Total()).
		Int("faults", result.Faults).
		Msg("Page extracted")

	return products
}

// Screen applies the acceptance gate to candidate records: a non-empty
// name, a parsed current price, a category in {phone, laptop}, and a
// current price at or below the ceiling. Dropped candidates are normal
// filtering outcomes, returned only as counts.
func Screen(candidates []Product, maxPrice float64) ([]Product, Skips) {
	var accepted []Product
	var skips Skips

	for _, p := range candidates {
		switch {
		case p.Name == "":
			skips.NoName++
		case p.CurrentPrice <= 0:
			// The price parser rejects anything below the plausibility
			// floor, so 0 means no price was parsed
			skips.NoPrice++
		case p.Category != CategoryPhone && p.Category != CategoryLaptop:
			skips.Unclassified++
		case p.CurrentPrice > maxPrice:
			skips.OverCeiling++
		default:
			accepted = append(accepted, p)
		}
	}

	return accepted, skips
}
