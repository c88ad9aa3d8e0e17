package models

import (
	"time"
)

// BadgeArtwork records a CDN artwork override uploaded through the admin
// surface. The static catalog path is the fallback; overrides are reapplied
// to the in-memory catalog at startup so they survive restarts.
type BadgeArtwork struct {
	BadgeID   string    `gorm:"primaryKey" json:"badge_id"`
	URL       string    `gorm:"not null" json:"url"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
