// Package normalize canonicalizes user-supplied values before they are
// stored or compared.
package normalize

import (
	"strings"

	"github.com/dalemusser/recordhub/internal/app/system/htmlsanitize"
)

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of spaces.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Color lowercases a hex color so "#AB1111" and "#ab1111" collide on the
// unique index.
func Color(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SEI strips markup from a SEI process number and trims it. Stored values
// and lookup keys both pass through here; matching is exact otherwise.
func SEI(s string) string {
	return htmlsanitize.PlainText(s)
}

// SEIPtr is SEI for optional edit fields.
func SEIPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := SEI(*s)
	return &v
}
