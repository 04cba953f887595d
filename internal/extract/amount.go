package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/money"
)

// Total-amount patterns in priority order. The first pattern that
// matches anywhere in the text wins; later patterns are never
// consulted even if they would match earlier in the text.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)TOTAL[:\s]*(\d+[,.]\d{2})\s*(?:€|EUR)?`),
	regexp.MustCompile(`(\d+[,.]\d{2})\s*€`),
	regexp.MustCompile(`€\s*(\d+[,.]\d{2})`),
	regexp.MustCompile(`(?i)EUR\s*(\d+[,.]\d{2})`),
	regexp.MustCompile(`(?i)(\d+[,.]\d{2})\s*EUR`),
}

// ParseTotal extracts the tax-inclusive total from recognized text, or
// nil when no pattern matches.
func ParseTotal(text string) *decimal.Decimal {
	for _, re := range totalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, ok := money.Parse(m[1]); ok {
			d = d.Round(2)
			return &d
		}
	}
	return nil
}
