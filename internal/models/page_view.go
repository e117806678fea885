package models

import "time"

type PageView struct {
	ID        uint   `gorm:"primaryKey"`
	PagePath  string `gorm:"not null;default:''"`
	UserAgent string `gorm:"not null;default:''"`
	Referrer  string `gorm:"not null;default:''"`
	IPAddress string `gorm:"column:ip_address;not null;default:'unknown'"`
	SessionID string `gorm:"index;not null;default:''"`
	CreatedAt time.Time
}

func (PageView) TableName() string {
	return "page_views"
}
