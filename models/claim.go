package models

import "time"

// BadgeClaim = device acquired a badge at a rally spot.
// The composite unique index is what makes concurrent claims of the same
// pair resolve deterministically: exactly one insert wins, the loser sees
// a conflict and is remapped to the idempotent "already claimed" outcome.
type BadgeClaim struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_claims_user_badge;not null" json:"user_id"`
	BadgeID   string    `gorm:"uniqueIndex:idx_claims_user_badge;not null" json:"badge_id"`
	ClaimedAt time.Time `gorm:"autoCreateTime" json:"claimed_at"`
}
