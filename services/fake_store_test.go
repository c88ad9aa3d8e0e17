package services_test

import (
	"sort"
	"time"

	"badge-rally-system/models"
	"badge-rally-system/services"

	"github.com/google/uuid"
)

// fakeStore is a minimal in-memory ClaimStore for workflow tests. The
// loseRace flag simulates the check-then-act window: HasClaim reports the
// pair absent, but by insert time another writer already owns it.
type fakeStore struct {
	users        map[string]*models.User
	claims       map[string]map[string]time.Time // device → badge → claimed at
	achievements map[string]map[string]models.Achievement

	loseRace  bool
	insertErr error
	queryErr  error
}

var _ services.ClaimStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]*models.User{},
		claims:       map[string]map[string]time.Time{},
		achievements: map[string]map[string]models.Achievement{},
	}
}

func (f *fakeStore) EnsureUser(deviceID string) (*models.User, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if u, ok := f.users[deviceID]; ok {
		return u, nil
	}
	u := &models.User{ID: deviceID, AvatarID: 1}
	f.users[deviceID] = u
	return u, nil
}

func (f *fakeStore) GetUser(deviceID string) (*models.User, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.users[deviceID], nil
}

func (f *fakeStore) SetAvatar(deviceID string, avatarID int) error {
	u, err := f.EnsureUser(deviceID)
	if err != nil {
		return err
	}
	u.AvatarID = avatarID
	return nil
}

func (f *fakeStore) AddEXP(deviceID string, amount int64) (int64, error) {
	u, err := f.EnsureUser(deviceID)
	if err != nil {
		return 0, err
	}
	u.TotalEXP += amount
	return u.TotalEXP, nil
}

func (f *fakeStore) HasClaim(deviceID, badgeID string) (bool, error) {
	if f.queryErr != nil {
		return false, f.queryErr
	}
	if f.loseRace {
		return false, nil
	}
	_, ok := f.claims[deviceID][badgeID]
	return ok, nil
}

func (f *fakeStore) InsertClaim(claim *models.BadgeClaim) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	set := f.claims[claim.UserID]
	if set == nil {
		set = map[string]time.Time{}
		f.claims[claim.UserID] = set
	}
	if f.loseRace {
		// the concurrent winner already wrote the row
		set[claim.BadgeID] = time.Now()
		return false, nil
	}
	if _, ok := set[claim.BadgeID]; ok {
		return false, nil
	}
	set[claim.BadgeID] = claim.ClaimedAt
	return true, nil
}

func (f *fakeStore) ListClaims(deviceID string) ([]string, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var ids []string
	for id := range f.claims[deviceID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeStore) CountClaims(deviceID string) (int64, error) {
	if f.queryErr != nil {
		return 0, f.queryErr
	}
	return int64(len(f.claims[deviceID])), nil
}

func (f *fakeStore) DeleteAllClaims(deviceID string) error {
	delete(f.claims, deviceID)
	return nil
}

func (f *fakeStore) ListAchievements(deviceID string) ([]models.Achievement, error) {
	var list []models.Achievement
	for _, a := range f.achievements[deviceID] {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func (f *fakeStore) InsertAchievement(a *models.Achievement) (bool, error) {
	set := f.achievements[a.UserID]
	if set == nil {
		set = map[string]models.Achievement{}
		f.achievements[a.UserID] = set
	}
	if _, ok := set[a.Code]; ok {
		return false, nil
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	set[a.Code] = *a
	return true, nil
}
