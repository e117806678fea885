package models

import "time"

const (
	InteractionTypePageView    = "page_view"
	InteractionTypeEmailSignup = "email_signup"
)

// UserInteraction is the unified telemetry row written alongside the
// page_views and waitlist_emails tables.
type UserInteraction struct {
	ID              uint    `gorm:"primaryKey"`
	InteractionType string  `gorm:"not null;index"`
	PagePath        string  `gorm:"not null;default:''"`
	UserAgent       string  `gorm:"not null;default:''"`
	Referrer        string  `gorm:"not null;default:''"`
	IPAddress       string  `gorm:"column:ip_address;not null;default:''"`
	SessionID       string  `gorm:"not null;default:''"`
	Email           *string `gorm:"index"`
	CreatedAt       time.Time
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}
