package crawler

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PageExtractor turns the parsed markup of one listing page into
// candidate product records. It is a pure mapping: the acceptance gate
// (name, price, category, ceiling) is applied by the shop crawler.
type PageExtractor struct {
	shop     string
	base     *url.URL
	profile  SelectorProfile
	prices   *PriceParser
	classify *Classifier
}

// NewPageExtractor creates an extractor for one shop
func NewPageExtractor(shopName, baseURL string, profile SelectorProfile, prices *PriceParser, classifier *Classifier) (*PageExtractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	return &PageExtractor{
		shop:     shopName,
		base:     base,
		profile:  profile,
		prices:   prices,
		classify: classifier,
	}, nil
}

// Extract builds candidate records from a listing page. A page with no
// product containers yields an empty result; that is a normal state
// (e.g. a flash sale that has ended), not a failure. One candidate's
// fault never aborts the remaining candidates.
func (e *PageExtractor) Extract(doc *goquery.Document) PageResult {
	var result PageResult

	containers := e.findContainers(doc)
	if containers == nil {
		return result
	}

	containers.Each(func(i int, s *goquery.Selection) {
		candidate, ok := e.buildCandidate(s)
		if !ok {
			result.Faults++
			return
		}
		result.Candidates = append(result.Candidates, candidate)
	})

	return result
}

// findContainers returns the product container selection, trying the
// profile's container selectors in priority order
func (e *PageExtractor) findContainers(doc *goquery.Document) *goquery.Selection {
	for _, sel := range e.profile.ProductList {
		if m := doc.Find(sel); m.Length() > 0 {
			return m
		}
	}
	return nil
}

// buildCandidate extracts one product from its container. The second
// return value is false when the fragment could not be processed.
func (e *PageExtractor) buildCandidate(s *goquery.Selection) (candidate Product, ok bool) {
	// A malformed fragment skips this candidate only
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	name := firstText(s, e.profile.Name)
	if name == "" {
		name = UnknownProductName
	}

	current, havePrice := 0.0, false
	if priceText := firstText(s, e.profile.CurrentPrice); priceText != "" {
		current, havePrice = e.prices.Parse(priceText)
	}

	// The scraped "original" price is only trusted when it renders a
	// genuine discount; otherwise it collapses to the current price
	original := current
	discount := ""
	if havePrice {
		if origText := firstText(s, e.profile.OriginalPrice); origText != "" {
			if orig, okOrig := e.prices.Parse(origText); okOrig && orig > current {
				original = orig
				discount = FormatDiscount(original, current)
			}
		}
	}

	link := firstAttr(s, e.profile.Link, "href")
	image := firstAttr(s, e.profile.Image, "data-src", "src")

	return Product{
		Shop:          e.shop,
		Name:          name,
		Category:      e.classify.Classify(name),
		CurrentPrice:  current,
		OriginalPrice: original,
		Discount:      discount,
		URL:           e.resolveURL(link),
		ImageURL:      e.resolveURL(image),
		Timestamp:     time.Now().UTC(),
	}, true
}

// resolveURL resolves a possibly-relative link against the shop's base origin
func (e *PageExtractor) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return e.base.ResolveReference(ref).String()
}

// firstText returns the trimmed text of the first selector with a match
func firstText(s *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if m := s.Find(sel); m.Length() > 0 {
			if text := strings.TrimSpace(m.First().Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// firstAttr returns the first non-empty attribute among attrs of the
// first selector with a match
func firstAttr(s *goquery.Selection, selectors []string, attrs ...string) string {
	for _, sel := range selectors {
		m := s.Find(sel)
		if m.Length() == 0 {
			continue
		}
		for _, attr := range attrs {
			if val, exists := m.First().Attr(attr); exists && strings.TrimSpace(val) != "" {
				return strings.TrimSpace(val)
			}
		}
	}
	return ""
}
