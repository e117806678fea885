// Package migrations holds the versioned SQL schema for the waitlist and
// analytics tables.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
