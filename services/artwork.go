package services

import (
	"badge-rally-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArtworkStore persists badge artwork overrides.
type ArtworkStore interface {
	UpsertArtwork(a *models.BadgeArtwork) error
	ListArtwork() ([]models.BadgeArtwork, error)
}

type GormArtworkStore struct {
	DB *gorm.DB
}

func NewGormArtworkStore(db *gorm.DB) *GormArtworkStore {
	return &GormArtworkStore{DB: db}
}

func (s *GormArtworkStore) UpsertArtwork(a *models.BadgeArtwork) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "badge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"url"}),
	}).Create(a).Error
}

func (s *GormArtworkStore) ListArtwork() ([]models.BadgeArtwork, error) {
	var list []models.BadgeArtwork
	if err := s.DB.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ArtworkService keeps the persisted overrides and the in-memory catalog
// in sync: writes go to the store first, then to the catalog.
type ArtworkService struct {
	Store ArtworkStore
}

func NewArtworkService(store ArtworkStore) *ArtworkService {
	return &ArtworkService{Store: store}
}

// SetArtwork records the override and applies it to the running catalog.
func (s *ArtworkService) SetArtwork(badgeID, url string) error {
	if err := s.Store.UpsertArtwork(&models.BadgeArtwork{BadgeID: badgeID, URL: url}); err != nil {
		return err
	}
	models.SetBadgeArtwork(badgeID, url)
	return nil
}

// ApplyOverrides replays persisted overrides onto the catalog. Called once
// at startup, after the store is migrated.
func (s *ArtworkService) ApplyOverrides() error {
	list, err := s.Store.ListArtwork()
	if err != nil {
		return err
	}
	for _, a := range list {
		models.SetBadgeArtwork(a.BadgeID, a.URL)
	}
	return nil
}
