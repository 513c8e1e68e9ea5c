package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Currency spellings seen on Kenyan shop listings: KSh, Ksh., KShs,
	// Sh, KES. Case-insensitive, optional trailing dot.
	currencyRegex = regexp.MustCompile(`(?i)k?shs?\.?|kes`)

	// First contiguous decimal number, integer or with one fractional part
	numberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// PriceParser normalizes raw price strings into numeric values.
// Values below Floor are rejected as extraction noise (a quantity or a
// rating misread as a price). The floor is a heuristic and drops
// genuinely cheap items; it is configurable for that reason.
type PriceParser struct {
	Floor float64
}

// NewPriceParser creates a price parser with the given plausibility floor
func NewPriceParser(floor float64) *PriceParser {
	return &PriceParser{Floor: floor}
}

// Parse extracts a numeric price from a raw text fragment. The second
// return value is false when no plausible price was found.
func (p *PriceParser) Parse(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	// Strip currency tokens and thousands separators before scanning
	s = currencyRegex.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ",", "")

	match := numberRegex.FindString(s)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	if value < p.Floor {
		return 0, false
	}

	return value, true
}
