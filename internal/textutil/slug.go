package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// Slugify lowercases value and collapses every run of characters outside
// [a-z0-9] into a single hyphen. Leading and trailing hyphens are removed, so
// a value with no ASCII letters or digits yields an empty slug.
func Slugify(value string) string {
	lowered := lowerCaser.String(value)
	var b strings.Builder
	b.Grow(len(lowered))
	pendingHyphen := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
