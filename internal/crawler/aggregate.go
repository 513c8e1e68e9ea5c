package crawler

import (
	"fmt"
	"sort"
	"time"
)

// Deduplicate removes exact duplicates by the composite identity key
// (name, currentPrice, shop), keeping the first encountered. There is
// no fuzzy matching.
func Deduplicate(items []Product) []Product {
	seen := make(map[string]struct{}, len(items))
	out := make([]Product, 0, len(items))

	for _, p := range items {
		key := fmt.Sprintf("%s|%.2f|%s", p.Name, p.CurrentPrice, p.Shop)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	return out
}

// BuildSnapshot deduplicates, sorts ascending by current price and
// wraps the items with a generation timestamp and count. Each run's
// snapshot wholly supersedes the previous one.
func BuildSnapshot(items []Product, now time.Time) Snapshot {
	deduped := Deduplicate(items)

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].CurrentPrice < deduped[j].CurrentPrice
	})

	return Snapshot{
		Timestamp:  now.UTC(),
		TotalItems: len(deduped),
		Items:      deduped,
	}
}
