package models

import "time"

// GenerationPrefs is a single-row table (ID=1) of client-side generation
// preferences.
type GenerationPrefs struct {
	ID               uint `gorm:"primaryKey"`
	Version          int  `gorm:"not null;default:1"`
	DefaultToneLevel int  `gorm:"not null;default:0"`
	RecentDocsLimit  int  `gorm:"not null;default:3"`
	UpdatedAt        time.Time
}
