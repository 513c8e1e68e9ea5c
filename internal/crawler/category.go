package crawler

import (
	"strings"

	"kenyadeals/dealworker/config"
)

// Classifier maps product names to a category via keyword matching.
// The phone set is tested before the laptop set, so a name matching
// both (e.g. "Lenovo phone holder") classifies as phone. The ordering
// is a documented precedence, not a semantic rule.
type Classifier struct {
	phone  []string
	laptop []string
}

// NewClassifier builds a classifier from the configured keyword sets
func NewClassifier(kw config.Keywords) *Classifier {
	return &Classifier{
		phone:  lowerAll(kw.Phone),
		laptop: lowerAll(kw.Laptop),
	}
}

// Classify returns the category for a product name, or "" when the
// name matches neither keyword set
func (c *Classifier) Classify(name string) Category {
	n := strings.ToLower(name)

	for _, kw := range c.phone {
		if strings.Contains(n, kw) {
			return CategoryPhone
		}
	}
	for _, kw := range c.laptop {
		if strings.Contains(n, kw) {
			return CategoryLaptop
		}
	}

	return ""
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
