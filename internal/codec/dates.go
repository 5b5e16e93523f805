package codec

import (
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var parseLayouts = []string{
	time.RFC3339Nano,
	timestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseDate reads a date or timestamp in any of the layouts goalie has ever
// written. Date-only values are midnight UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// FormatTimestamp renders t as a millisecond-precision UTC ISO-8601 timestamp.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseOptionalDate(value string) *time.Time {
	parsed, ok := ParseDate(value)
	if !ok {
		return nil
	}
	return &parsed
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}
