package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PgUniqueViolation is the SQLSTATE Postgres reports for a unique constraint
// or unique index violation.
const PgUniqueViolation = "23505"

// UniqueConstraint identifies one unique constraint by its Postgres name and
// the table/column SQLite reports for the same rule.
type UniqueConstraint struct {
	Name   string
	Table  string
	Column string
}

// IsUniqueViolation reports whether err was raised by the store for the given
// constraint. Violations of other unique constraints do not match.
func IsUniqueViolation(err error, constraint UniqueConstraint) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != PgUniqueViolation {
			return false
		}
		if constraint.Name == "" {
			return true
		}
		return pgErr.ConstraintName == constraint.Name ||
			strings.Contains(pgErr.Message, constraint.Name)
	}

	// sqlite: "UNIQUE constraint failed: waitlist_emails.email"
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if constraint.Table == "" || constraint.Column == "" {
		return true
	}
	return strings.Contains(msg, constraint.Table+"."+constraint.Column)
}
