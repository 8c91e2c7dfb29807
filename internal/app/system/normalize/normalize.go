// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"

	"github.com/dalemusser/accidentdash/internal/app/system/htmlsanitize"
)

// Email trims surrounding whitespace and lower-cases the address so that
// lookups and the unique index agree on one spelling.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace, strips any markup, and collapses internal runs
// of whitespace to a single space. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(htmlsanitize.StripTags(s)), " ")
}
