package models

import (
	"time"

	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusActive    EventStatus = "active"
	EventStatusEnded     EventStatus = "ended"
)

// LimitedEvent is a time-boxed incentive ("weekend double points",
// "golden hour"). Status transitions are driven by the scheduler, not by
// request handlers.
type LimitedEvent struct {
	ID          string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Code        string      `gorm:"uniqueIndex;not null" json:"code"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Status      EventStatus `gorm:"not null;default:'scheduled';index" json:"status"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
