package models

import "time"

// WaitlistEmailConstraint is the unique index guarding one signup per
// address. It matches the name Postgres gives the column's UNIQUE constraint
// in the SQL migrations.
const WaitlistEmailConstraint = "waitlist_emails_email_key"

type WaitlistEmail struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"not null;uniqueIndex:waitlist_emails_email_key"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WaitlistEmail) TableName() string {
	return "waitlist_emails"
}
