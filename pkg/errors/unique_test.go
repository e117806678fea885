package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var emailKey = UniqueConstraint{Name: "waitlist_emails_email_key", Table: "waitlist_emails", Column: "email"}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	dup := &pgconn.PgError{Code: PgUniqueViolation, ConstraintName: "waitlist_emails_email_key"}
	assert.True(t, IsUniqueViolation(dup, emailKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", dup), emailKey))

	otherConstraint := &pgconn.PgError{Code: PgUniqueViolation, ConstraintName: "waitlist_emails_pkey"}
	assert.False(t, IsUniqueViolation(otherConstraint, emailKey))

	notNull := &pgconn.PgError{Code: "23502", ConstraintName: "waitlist_emails_email_key"}
	assert.False(t, IsUniqueViolation(notNull, emailKey))

	assert.True(t, IsUniqueViolation(otherConstraint, UniqueConstraint{}))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: waitlist_emails.email"), emailKey))
	assert.False(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: page_views.session_id"), emailKey))
	assert.False(t, IsUniqueViolation(errors.New("database is locked"), emailKey))
	assert.False(t, IsUniqueViolation(nil, emailKey))
}
