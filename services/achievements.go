package services

import (
	"log"

	"badge-rally-system/models"
)

// AchievementService unlocks collection achievements in response to claim
// events. Unlocks are idempotent: the (user, code) unique index absorbs
// re-deliveries the same way duplicate claims are absorbed.
type AchievementService struct {
	Store ClaimStore
}

func NewAchievementService(store ClaimStore) *AchievementService {
	return &AchievementService{Store: store}
}

// OnBadgeClaimed implements ClaimListener. Achievement writes happen after
// the claim itself is committed; a failure here is logged but does not
// roll back the claim.
func (s *AchievementService) OnBadgeClaimed(ev BadgeClaimed) {
	if !ev.IsNew {
		return
	}

	claimed, err := s.Store.ListClaims(ev.DeviceID)
	if err != nil {
		log.Printf("❌ [ACHIEVEMENTS] failed to list claims for %s: %v", ev.DeviceID, err)
		return
	}

	count := len(claimed)
	half := (models.CatalogSize() + 1) / 2

	if count >= 1 {
		s.unlock(ev.DeviceID, "first_badge", "ファーストステップ！", "初めてのバッジを獲得", "🥇")
	}
	if count >= half {
		s.unlock(ev.DeviceID, "half_way", "ハーフウェイ！", "半分のバッジを獲得", "🏃")
	}
	if count >= models.CatalogSize() {
		s.unlock(ev.DeviceID, "grand_master", "グランドマスター！", "全てのバッジを獲得", "👑")
	}

	rare := 0
	for _, id := range claimed {
		badge, ok := models.LookupBadge(id)
		if !ok {
			continue
		}
		if badge.Rarity == models.RarityRare {
			rare++
		}
	}
	if rare >= 2 {
		s.unlock(ev.DeviceID, "rare_collector", "レアコレクター", "2個以上のレアバッジを獲得", "💎")
	}

	if badge, ok := models.LookupBadge(ev.BadgeID); ok && badge.Rarity == models.RarityLegendary {
		s.unlock(ev.DeviceID, "legend_hunter", "レジェンドハンター", "レジェンダリーバッジを獲得", "🐉")
	}
}

func (s *AchievementService) unlock(deviceID, code, name, detail, icon string) {
	inserted, err := s.Store.InsertAchievement(&models.Achievement{
		UserID: deviceID,
		Code:   code,
		Name:   name,
		Detail: detail,
		Icon:   icon,
	})
	if err != nil {
		log.Printf("❌ [ACHIEVEMENTS] failed to unlock %s for %s: %v", code, deviceID, err)
		return
	}
	if inserted {
		log.Printf("🏆 Achievement unlocked: %s → %s", code, deviceID)
	}
}

func (s *AchievementService) ListForUser(deviceID string) ([]models.Achievement, error) {
	return s.Store.ListAchievements(deviceID)
}
