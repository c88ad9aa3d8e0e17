package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"badge-rally-system/models"
)

// ErrUnknownBadge marks a scanned code that is not in the static catalog.
// Handlers map it to a 400; unknown codes are never silently accepted.
var ErrUnknownBadge = errors.New("unknown badge id")

// MaxBattleEXP caps a single battle reward so clients cannot inflate
// their experience total with arbitrary numbers.
const MaxBattleEXP = 500

// ClaimResult is the outcome of one claim request. A repeat claim of an
// already-owned badge is a normal no-op, reported with IsNew=false.
type ClaimResult struct {
	IsNew        bool          `json:"isNew"`
	Badge        *models.Badge `json:"badge,omitempty"`
	TotalClaimed int64         `json:"totalClaimed"`
}

// ClaimService orchestrates the badge-claim workflow:
// verify (done by middleware) → validate code → check → insert → count.
type ClaimService struct {
	Store  ClaimStore
	Events *ClaimNotifier
}

func NewClaimService(store ClaimStore, events *ClaimNotifier) *ClaimService {
	return &ClaimService{Store: store, Events: events}
}

// ClaimBadge records the claim for (deviceID, code) exactly once.
// A uniqueness conflict on insert (another request won the race between
// the membership check and the insert) is remapped to IsNew=false, not
// surfaced as an error.
func (s *ClaimService) ClaimBadge(deviceID, code string) (*ClaimResult, error) {
	badge, ok := models.LookupBadge(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBadge, code)
	}

	if _, err := s.Store.EnsureUser(deviceID); err != nil {
		return nil, err
	}

	has, err := s.Store.HasClaim(deviceID, badge.ID)
	if err != nil {
		return nil, err
	}

	isNew := false
	if !has {
		inserted, err := s.Store.InsertClaim(&models.BadgeClaim{
			UserID:    deviceID,
			BadgeID:   badge.ID,
			ClaimedAt: time.Now(),
		})
		if err != nil {
			return nil, err
		}
		isNew = inserted
	}

	total, err := s.Store.CountClaims(deviceID)
	if err != nil {
		return nil, err
	}

	result := &ClaimResult{IsNew: isNew, TotalClaimed: total}
	if isNew {
		result.Badge = badge
		log.Printf("🎖️ Badge claimed: %s → %s (%d/%d)", badge.ID, deviceID, total, models.CatalogSize())
	}

	if s.Events != nil {
		s.Events.Publish(BadgeClaimed{DeviceID: deviceID, BadgeID: badge.ID, IsNew: isNew})
	}
	return result, nil
}

// Profile is what GET /badges returns: the authoritative claimed set plus
// the bits of user state the client derives its view from. Stats are
// recomputed from the badge set on every call, never persisted.
type Profile struct {
	UserID   string      `json:"userId"`
	Badges   []string    `json:"badges"`
	EXP      int64       `json:"exp"`
	AvatarID int         `json:"avatarId"`
	Stats    BattleStats `json:"stats"`
}

func (s *ClaimService) GetProfile(deviceID string) (*Profile, error) {
	badges, err := s.Store.ListClaims(deviceID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []string{}
	}

	profile := &Profile{UserID: deviceID, Badges: badges, AvatarID: 1}
	user, err := s.Store.GetUser(deviceID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		profile.EXP = user.TotalEXP
		profile.AvatarID = user.AvatarID
	}
	profile.Stats = DeriveStats(len(badges), profile.AvatarID, models.CatalogSize())
	return profile, nil
}

// ResetClaims removes every claim for the device. Debug/testing only.
func (s *ClaimService) ResetClaims(deviceID string) error {
	return s.Store.DeleteAllClaims(deviceID)
}

// AddBattleEXP applies a server-clamped experience increment and returns
// the amount actually granted plus the new total.
func (s *ClaimService) AddBattleEXP(deviceID string, requested int64) (granted, total int64, err error) {
	granted = requested
	if granted > MaxBattleEXP {
		granted = MaxBattleEXP
	}

	total, err = s.Store.AddEXP(deviceID, granted)
	if err != nil {
		return 0, 0, err
	}
	return granted, total, nil
}

func (s *ClaimService) SetAvatar(deviceID string, avatarID int) error {
	return s.Store.SetAvatar(deviceID, avatarID)
}

// GetAvatar returns the chosen avatar, defaulting to 1 for fresh devices.
func (s *ClaimService) GetAvatar(deviceID string) (int, error) {
	user, err := s.Store.GetUser(deviceID)
	if err != nil {
		return 0, err
	}
	if user == nil || user.AvatarID < 1 {
		return 1, nil
	}
	return user.AvatarID, nil
}
