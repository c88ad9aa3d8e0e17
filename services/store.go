package services

import (
	"fmt"

	"badge-rally-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimStore is the persistence boundary for the claim workflow. The GORM
// implementation below is the real one; tests substitute an in-memory fake.
type ClaimStore interface {
	EnsureUser(deviceID string) (*models.User, error)
	GetUser(deviceID string) (*models.User, error)
	SetAvatar(deviceID string, avatarID int) error
	AddEXP(deviceID string, amount int64) (int64, error)

	HasClaim(deviceID, badgeID string) (bool, error)
	// InsertClaim reports inserted=false when the (device, badge) pair
	// already exists, including when a concurrent request won the race.
	InsertClaim(claim *models.BadgeClaim) (bool, error)
	ListClaims(deviceID string) ([]string, error)
	CountClaims(deviceID string) (int64, error)
	DeleteAllClaims(deviceID string) error

	ListAchievements(deviceID string) ([]models.Achievement, error)
	InsertAchievement(a *models.Achievement) (bool, error)
}

type GormClaimStore struct {
	DB *gorm.DB
}

func NewGormClaimStore(db *gorm.DB) *GormClaimStore {
	return &GormClaimStore{DB: db}
}

// EnsureUser creates the user row on first contact (idempotent)
func (s *GormClaimStore) EnsureUser(deviceID string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", deviceID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = models.User{ID: deviceID, AvatarID: 1}
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return nil, err
	}
	// Re-read in case a concurrent request created the row first
	if err := s.DB.Where("id = ?", deviceID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormClaimStore) GetUser(deviceID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", deviceID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormClaimStore) SetAvatar(deviceID string, avatarID int) error {
	if _, err := s.EnsureUser(deviceID); err != nil {
		return err
	}
	res := s.DB.Model(&models.User{}).Where("id = ?", deviceID).Update("avatar_id", avatarID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("avatar update touched no rows for %s", deviceID)
	}
	return nil
}

// AddEXP atomically increments the experience total and returns it.
// The increment is applied in SQL so concurrent battles never lose points.
func (s *GormClaimStore) AddEXP(deviceID string, amount int64) (int64, error) {
	if _, err := s.EnsureUser(deviceID); err != nil {
		return 0, err
	}

	var total int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", deviceID).
			Update("total_exp", gorm.Expr("total_exp + ?", amount))
		if res.Error != nil {
			return res.Error
		}

		var user models.User
		if err := tx.Where("id = ?", deviceID).First(&user).Error; err != nil {
			return err
		}
		total = user.TotalEXP
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *GormClaimStore) HasClaim(deviceID, badgeID string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.BadgeClaim{}).
		Where("user_id = ? AND badge_id = ?", deviceID, badgeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertClaim relies on the composite unique index: ON CONFLICT DO NOTHING
// turns a duplicate (or a lost race) into RowsAffected == 0 instead of an
// error or a duplicate row.
func (s *GormClaimStore) InsertClaim(claim *models.BadgeClaim) (bool, error) {
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(claim)
	if res.Error != nil {
		if res.Error == gorm.ErrDuplicatedKey {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormClaimStore) ListClaims(deviceID string) ([]string, error) {
	var ids []string
	err := s.DB.Model(&models.BadgeClaim{}).
		Where("user_id = ?", deviceID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *GormClaimStore) CountClaims(deviceID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.BadgeClaim{}).
		Where("user_id = ?", deviceID).
		Count(&count).Error
	return count, err
}

func (s *GormClaimStore) DeleteAllClaims(deviceID string) error {
	return s.DB.Where("user_id = ?", deviceID).Delete(&models.BadgeClaim{}).Error
}

func (s *GormClaimStore) ListAchievements(deviceID string) ([]models.Achievement, error) {
	var list []models.Achievement
	err := s.DB.Where("user_id = ?", deviceID).
		Order("unlocked_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *GormClaimStore) InsertAchievement(a *models.Achievement) (bool, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "code"}},
		DoNothing: true,
	}).Create(a)
	if res.Error != nil {
		if res.Error == gorm.ErrDuplicatedKey {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
