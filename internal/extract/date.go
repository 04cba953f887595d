package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// French month names as printed on receipts.
var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"février":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"août":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December,
}

var (
	reDateDMY4 = regexp.MustCompile(`(\d{2})[/\-.](\d{2})[/\-.](\d{4})`)
	reDateDMY2 = regexp.MustCompile(`(\d{2})[/\-.](\d{2})[/\-.](\d{2})`)
	reDateText = regexp.MustCompile(`(?i)(\d{1,2})\s+(janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre)\s+(\d{4})`)
)

// ParseDate extracts a transaction date from recognized text. Three
// pattern families are tried in priority order: DD/MM/YYYY, DD/MM/YY
// (two-digit years expand per time.Parse: 00-68 become 2000s), then
// day + French month name + year. Only the first occurrence of each
// pattern is considered; an occurrence that is not a valid calendar
// date falls through to the next family. Returns nil when nothing
// matches.
func ParseDate(text string) *time.Time {
	if m := reDateDMY4.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("02/01/2006", m[1]+"/"+m[2]+"/"+m[3]); err == nil {
			return &t
		}
	}

	if m := reDateDMY2.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("02/01/06", m[1]+"/"+m[2]+"/"+m[3]); err == nil {
			return &t
		}
	}

	if m := reDateText.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := frenchMonths[strings.ToLower(m[2])]
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow ("32 mars" becomes April 1);
		// reject those instead
		if t.Day() == day && t.Month() == month {
			return &t
		}
	}

	return nil
}
