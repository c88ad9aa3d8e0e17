package services_test

import (
	"errors"
	"testing"

	"badge-rally-system/services"

	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	events []services.BadgeClaimed
}

func (r *recordingListener) OnBadgeClaimed(ev services.BadgeClaimed) {
	r.events = append(r.events, ev)
}

func newClaimService(store services.ClaimStore) (*services.ClaimService, *recordingListener) {
	listener := &recordingListener{}
	notifier := services.NewClaimNotifier()
	notifier.Subscribe(listener)
	return services.NewClaimService(store, notifier), listener
}

func TestClaimIdempotence(t *testing.T) {
	store := newFakeStore()
	svc, _ := newClaimService(store)

	first, err := svc.ClaimBadge("device-1", "shiramine")
	require.NoError(t, err)
	require.True(t, first.IsNew)
	require.NotNil(t, first.Badge)
	require.Equal(t, "shiramine", first.Badge.ID)
	require.EqualValues(t, 1, first.TotalClaimed)

	second, err := svc.ClaimBadge("device-1", "shiramine")
	require.NoError(t, err)
	require.False(t, second.IsNew)
	require.Nil(t, second.Badge)
	require.EqualValues(t, 1, second.TotalClaimed)

	count, err := store.CountClaims("device-1")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestClaimLostRaceIsNotAnError(t *testing.T) {
	// HasClaim sees the pair absent, but the insert loses to a concurrent
	// request. The conflict must map to isNew=false, never to a failure.
	store := newFakeStore()
	store.loseRace = true
	svc, _ := newClaimService(store)

	result, err := svc.ClaimBadge("device-1", "oguchi")
	require.NoError(t, err)
	require.False(t, result.IsNew)
	require.EqualValues(t, 1, result.TotalClaimed)
}

func TestClaimUnknownBadgeRejected(t *testing.T) {
	store := newFakeStore()
	svc, _ := newClaimService(store)

	_, err := svc.ClaimBadge("device-1", "nonexistent-id")
	require.Error(t, err)
	require.True(t, errors.Is(err, services.ErrUnknownBadge))

	// nothing was written, not even the user row
	require.Empty(t, store.users)
	require.Empty(t, store.claims)
}

func TestClaimIsolationBetweenDevices(t *testing.T) {
	store := newFakeStore()
	svc, _ := newClaimService(store)

	_, err := svc.ClaimBadge("device-1", "shiramine")
	require.NoError(t, err)
	_, err = svc.ClaimBadge("device-2", "oguchi")
	require.NoError(t, err)

	p1, err := svc.GetProfile("device-1")
	require.NoError(t, err)
	require.Equal(t, []string{"shiramine"}, p1.Badges)

	p2, err := svc.GetProfile("device-2")
	require.NoError(t, err)
	require.Equal(t, []string{"oguchi"}, p2.Badges)
}

func TestResetClearsFully(t *testing.T) {
	store := newFakeStore()
	svc, _ := newClaimService(store)

	_, err := svc.ClaimBadge("device-1", "shiramine")
	require.NoError(t, err)
	_, err = svc.ClaimBadge("device-1", "oguchi")
	require.NoError(t, err)

	require.NoError(t, svc.ResetClaims("device-1"))

	profile, err := svc.GetProfile("device-1")
	require.NoError(t, err)
	require.Empty(t, profile.Badges)

	// a previously-claimed badge claims fresh again
	again, err := svc.ClaimBadge("device-1", "shiramine")
	require.NoError(t, err)
	require.True(t, again.IsNew)
	require.EqualValues(t, 1, again.TotalClaimed)
}

func TestClaimStoreErrorsPropagate(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("storage unavailable")
	svc, _ := newClaimService(store)

	_, err := svc.ClaimBadge("device-1", "shiramine")
	require.Error(t, err)
	require.Contains(t, err.Error(), "storage unavailable")
}

func TestClaimPublishesTypedEvent(t *testing.T) {
	store := newFakeStore()
	svc, listener := newClaimService(store)

	_, err := svc.ClaimBadge("device-1", "shiramine")
	require.NoError(t, err)
	_, err = svc.ClaimBadge("device-1", "shiramine")
	require.NoError(t, err)

	require.Len(t, listener.events, 2)
	require.Equal(t, services.BadgeClaimed{DeviceID: "device-1", BadgeID: "shiramine", IsNew: true}, listener.events[0])
	require.Equal(t, services.BadgeClaimed{DeviceID: "device-1", BadgeID: "shiramine", IsNew: false}, listener.events[1])
}

func TestBattleEXPClamp(t *testing.T) {
	store := newFakeStore()
	svc, _ := newClaimService(store)

	granted, total, err := svc.AddBattleEXP("device-1", 10000)
	require.NoError(t, err)
	require.EqualValues(t, 500, granted)
	require.EqualValues(t, 500, total)

	granted, total, err = svc.AddBattleEXP("device-1", 200)
	require.NoError(t, err)
	require.EqualValues(t, 200, granted)
	require.EqualValues(t, 700, total)
}

func TestAvatarSelection(t *testing.T) {
	store := newFakeStore()
	svc, _ := newClaimService(store)

	// fresh device defaults to avatar 1
	avatarID, err := svc.GetAvatar("device-1")
	require.NoError(t, err)
	require.Equal(t, 1, avatarID)

	require.NoError(t, svc.SetAvatar("device-1", 3))
	avatarID, err = svc.GetAvatar("device-1")
	require.NoError(t, err)
	require.Equal(t, 3, avatarID)
}
