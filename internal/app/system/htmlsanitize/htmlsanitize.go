// Package htmlsanitize strips markup from user-supplied text before it is
// stored. Templates escape on output anyway; this keeps stored values
// plain.
package htmlsanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripTags removes every HTML element, keeping only text content.
// Entities produced by the policy are decoded back to plain characters.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strict.Sanitize(s))
}

// IsPlainText reports whether s contains no markup at all.
func IsPlainText(s string) bool {
	return StripTags(s) == s
}
