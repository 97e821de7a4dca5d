// Package htmlsanitize strips markup from free-text input before it is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag; script and style contents are dropped entirely.
var strict = bluemonday.StrictPolicy()

// PlainText returns s with all markup removed and surrounding space trimmed.
// Entities escaped by the policy are decoded again since the result is
// stored and served as JSON, not HTML.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// PlainTextPtr applies PlainText to *p when p is non-nil.
func PlainTextPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := PlainText(*p)
	return &v
}
