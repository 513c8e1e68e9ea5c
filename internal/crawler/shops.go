package crawler

import (
	"strings"

	"kenyadeals/dealworker/config"
	"kenyadeals/dealworker/logger"
	"kenyadeals/dealworker/pkg/errors"
)

// Selector profiles keyed by shop ID. Unknown shops fall back to the
// generic profile, which tries a prioritized list of plausible markers
// for each field.
var selectorProfiles = map[string]SelectorProfile{
	"jumia": {
		ProductList:   []string{"article.prd"},
		Name:          []string{"h3.name", "div.name"},
		CurrentPrice:  []string{"div.prc"},
		OriginalPrice: []string{"div.old", "div.s-prc-o"},
		Link:          []string{"a.core", "a"},
		Image:         []string{"img.img", "img"},
	},
	"kilimall": {
		ProductList:   []string{"div.product-item", "li.product-item"},
		Name:          []string{"p.product-title", "p.title", "div.title"},
		CurrentPrice:  []string{"div.product-price", "p.product-price", "span.price"},
		OriginalPrice: []string{"div.old-price", "span.old-price", "del"},
		Link:          []string{"a"},
		Image:         []string{"img"},
	},
}

// genericProfile is the fallback extraction strategy for shops without
// a dedicated profile
var genericProfile = SelectorProfile{
	ProductList: []string{
		"article.prd", "div.product-item", "li.product-item",
		"article.product-card", "div.product", "li.product",
	},
	Name: []string{
		"h3.name", "p.product-title", "h2.title", "a.title",
		"div.name", "h3", "h2",
	},
	CurrentPrice: []string{
		"div.prc", "div.product-price", "span.price-now",
		"span.price", "div.price", "p.price",
	},
	OriginalPrice: []string{
		"div.old", "div.old-price", "span.price-was",
		"span.old-price", "del", "s",
	},
	Link:  []string{"a.core", "a"},
	Image: []string{"img"},
}

// ProfileFor returns the selector profile for a shop ID
func ProfileFor(shopID string) SelectorProfile {
	if profile, ok := selectorProfiles[strings.ToLower(strings.TrimSpace(shopID))]; ok {
		return profile
	}
	return genericProfile
}

// NewShopCrawlers creates a crawler per configured shop. A shop whose
// configuration cannot be used is logged and skipped; it contributes
// zero products while the other shops continue.
func NewShopCrawlers(cfg *config.Config, fetcher Fetcher) []Crawler {
	prices := NewPriceParser(cfg.PriceFloor)
	classifier := NewClassifier(cfg.Keywords)

	var crawlers []Crawler
	for _, shop := range cfg.Shops {
		extractor, err := NewPageExtractor(shop.Name, shop.BaseURL, ProfileFor(shop.ID), prices, classifier)
		if err != nil {
			logger.ForShop(shop.Name).Warn().
				Err(errors.NewConfiguration("skipping shop", err)).
				Msg("Invalid shop configuration")
			continue
		}

		crawlers = append(crawlers, NewShopCrawler(shop, extractor, fetcher, cfg.MaxPrice))
	}

	return crawlers
}
