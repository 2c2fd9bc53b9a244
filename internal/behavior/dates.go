package behavior

import (
	"regexp"
	"strings"
	"time"
)

// dateFormats are tried in order; the first successful parse wins.
var dateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"January 2, 2006",
	"2 January 2006",
	"2006/01/02",
	"02/01/2006",
}

var (
	datePrefixRe = regexp.MustCompile(`(?i)(reviewed on|posted on|date:)\s*`)
	isoDateRe    = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
)

// parseDate accepts the known review date variants and strips scraper
// prefixes such as "Reviewed on". Returns a zero time and false when no
// format matches.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	s = datePrefixRe.ReplaceAllString(s, "")

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// last resort: pull an embedded YYYY-MM-DD out of a longer string
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006-1-2", m[1]+"-"+m[2]+"-"+m[3]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
