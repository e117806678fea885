// Package emailaddr holds the address predicates shared by the waitlist
// endpoint and the capture form.
package emailaddr

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// basicShapeRE is the server-side check: something@something.something
	// with no whitespace and a single '@'.
	basicShapeRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	wellFormedRE = regexp.MustCompile(
		"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
			`@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
			`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
	)
	topLevelLabelRE = regexp.MustCompile(`\.[a-zA-Z]{2,}$`)
)

// Normalize trims surrounding whitespace and lower-cases the address so the
// store's unique index treats case variants as the same signup.
func Normalize(s string) string {
	// A Caser holds state, so each call gets its own.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// HasBasicShape reports whether s looks like local@domain.tld.
func HasBasicShape(s string) bool {
	return basicShapeRE.MatchString(s)
}

// IsWellFormed applies the stricter form-side check: RFC-ish local part,
// hostname labels of at most 63 characters that start and end alphanumeric,
// and a final alphabetic label of at least two characters.
func IsWellFormed(s string) bool {
	return wellFormedRE.MatchString(s) && topLevelLabelRE.MatchString(s)
}
