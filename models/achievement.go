package models

import "time"

// Achievement: unlocked instance, written by the claim-event listener.
// (user_id, code) is unique so re-deliveries are no-ops.
type Achievement struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID     string    `gorm:"uniqueIndex:idx_achievements_user_code;not null" json:"user_id"`
	Code       string    `gorm:"uniqueIndex:idx_achievements_user_code;not null" json:"code"` // e.g. "first_badge", "grand_master"
	Name       string    `gorm:"not null" json:"name"`
	Detail     string    `json:"detail"`
	Icon       string    `gorm:"size:10" json:"icon"`
	UnlockedAt time.Time `gorm:"autoCreateTime" json:"unlocked_at"`
}
