package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Portuguese month names and three-letter abbreviations, accent-stripped
// ("março" is looked up as "marco").
var ptMonths = map[string]time.Month{
	"jan": time.January, "janeiro": time.January,
	"fev": time.February, "fevereiro": time.February,
	"mar": time.March, "marco": time.March,
	"abr": time.April, "abril": time.April,
	"mai": time.May, "maio": time.May,
	"jun": time.June, "junho": time.June,
	"jul": time.July, "julho": time.July,
	"ago": time.August, "agosto": time.August,
	"set": time.September, "setembro": time.September,
	"out": time.October, "outubro": time.October,
	"nov": time.November, "novembro": time.November,
	"dez": time.December, "dezembro": time.December,
}

var (
	// "22/10/2025", "22-10-2025", "22 10 2025"
	numericDatePattern = regexp.MustCompile(`(\d{1,2})[/\-\s](\d{1,2})[/\-\s](\d{4})`)
	// "22/out/2025", "22-outubro-2025"
	namedDatePattern = regexp.MustCompile(`(\d{1,2})[/\-\s]([a-z]{3,9})[/\-\s](\d{4})`)
	// "22 de outubro", "sábado, 22 de outubro"
	deMonthPattern = regexp.MustCompile(`(\d{1,2})\s+de\s+([a-z]{3,9})`)
	// "22 out", "sáb, 22 out" (weekday prefix matched implicitly)
	shortMonthPattern = regexp.MustCompile(`(\d{1,2})\s+([a-z]{3})\b`)
	// optional time segment anywhere in the text
	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// Generic layouts tried when no Brazilian pattern matches. Providers that
// embed structured data usually emit RFC 3339 already.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses heterogeneous locale-specific event date text into a UTC
// timestamp. Brazilian patterns are tried in order against a lowercased,
// trimmed, accent-stripped copy of the input; an optional HH:MM segment is
// extracted separately and merged in. Patterns without a year resolve to the
// current year. Returns the zero time (never an error) when nothing matches;
// the caller owns the keep-with-placeholder vs discard policy.
func ParseDate(text string) time.Time {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}
	}
	clean := StripAccents(strings.ToLower(trimmed))
	hour, minute := extractClock(clean)

	if m := numericDatePattern.FindStringSubmatch(clean); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(year, time.Month(month), day, hour, minute); ok {
			return t
		}
	}

	if m := namedDatePattern.FindStringSubmatch(clean); m != nil {
		if month, ok := monthFromName(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if t, ok := makeDate(year, month, day, hour, minute); ok {
				return t
			}
		}
	}

	if m := deMonthPattern.FindStringSubmatch(clean); m != nil {
		if month, ok := monthFromName(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			if t, ok := makeDate(time.Now().Year(), month, day, hour, minute); ok {
				return t
			}
		}
	}

	if m := shortMonthPattern.FindStringSubmatch(clean); m != nil {
		if month, ok := monthFromName(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			if t, ok := makeDate(time.Now().Year(), month, day, hour, minute); ok {
				return t
			}
		}
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}

// monthFromName resolves a Portuguese month name or abbreviation. Unknown
// names are rejected so stray "NN xyz" fragments don't produce dates.
func monthFromName(name string) (time.Month, bool) {
	if m, ok := ptMonths[name]; ok {
		return m, true
	}
	if len(name) > 3 {
		if m, ok := ptMonths[name[:3]]; ok {
			return m, true
		}
	}
	return 0, false
}

func makeDate(year int, month time.Month, day, hour, minute int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC), true
}

func extractClock(clean string) (hour, minute int) {
	m := clockPattern.FindStringSubmatch(clean)
	if m == nil {
		return 0, 0
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0
	}
	return hour, minute
}
