package models

import (
	"time"
)

// User is keyed by the opaque device identity minted at first visit.
// There are no credentials beyond the signed session cookie, one row
// per device/browser profile, created lazily on first write.
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	AvatarID  int       `gorm:"default:1" json:"avatar_id"`
	TotalEXP  int64     `gorm:"default:0" json:"total_exp"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
