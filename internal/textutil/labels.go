package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Label turns an enum token such as "in_progress" into "In Progress".
func Label(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(token, "_", " "))
}

// Truncate shortens value to at most width runes, marking the cut with "...".
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
