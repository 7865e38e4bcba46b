package extract

import (
	"regexp"
	"strings"
	"time"
)

// dateRangePattern locates a <start>-<end> date range. Paragraph text has
// en/em dashes translated to "-" by Clean, but the raw forms are accepted
// too in case the pattern runs on untranslated text.
var dateRangePattern = regexp.MustCompile(
	`(\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}/\d{2,4})\s*[-\x{2013}\x{2014}]\s*(\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}/\d{2,4})`)

// dateLayouts are the four accepted calendar formats, tried in order:
// month/day/year, month/day with two-digit year, month/year, and month with
// two-digit year.
var dateLayouts = []string{"1/2/2006", "1/2/06", "1/2006", "1/06"}

// ParseDateStr normalizes one side of a date range to YYYY-MM-DD. Month-only
// values become the first day of that month. An unparsable value yields the
// empty string, never an error; a partially dated record beats no record.
func ParseDateStr(dateStr string) string {
	dateStr = strings.Trim(dateStr, " *_")
	if dateStr == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, dateStr)
		if err != nil {
			continue
		}
		if strings.Contains(layout, "/2/") {
			return parsed.Format("2006-01-02")
		}
		return parsed.Format("2006-01") + "-01"
	}
	return ""
}

// ExtractDates pulls the (start, end) pair out of a project-dates value.
// Either side may come back empty if its half of the range did not parse.
func ExtractDates(text string) (start, end string) {
	match := dateRangePattern.FindStringSubmatch(text)
	if match == nil {
		return "", ""
	}
	return ParseDateStr(match[1]), ParseDateStr(match[2])
}
