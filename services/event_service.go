package services

import (
	"time"

	"badge-rally-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventStore is the persistence boundary for limited-time events. Like
// ClaimStore, the GORM implementation is the real one and tests substitute
// an in-memory fake.
type EventStore interface {
	ActiveEvents() ([]models.LimitedEvent, error)
	InsertEvent(e *models.LimitedEvent) error
	EventsStartingBy(now time.Time) ([]models.LimitedEvent, error)
	EventsEndingBy(now time.Time) ([]models.LimitedEvent, error)
	UpdateEventStatus(e *models.LimitedEvent, status models.EventStatus) error
}

type GormEventStore struct {
	DB *gorm.DB
}

func NewGormEventStore(db *gorm.DB) *GormEventStore {
	return &GormEventStore{DB: db}
}

func (s *GormEventStore) ActiveEvents() ([]models.LimitedEvent, error) {
	var events []models.LimitedEvent
	err := s.DB.Where("status = ?", models.EventStatusActive).
		Order("ends_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *GormEventStore) InsertEvent(e *models.LimitedEvent) error {
	return s.DB.Create(e).Error
}

func (s *GormEventStore) EventsStartingBy(now time.Time) ([]models.LimitedEvent, error) {
	var events []models.LimitedEvent
	err := s.DB.Where("status = ? AND starts_at <= ?", models.EventStatusScheduled, now).
		Find(&events).Error
	return events, err
}

func (s *GormEventStore) EventsEndingBy(now time.Time) ([]models.LimitedEvent, error) {
	var events []models.LimitedEvent
	err := s.DB.Where("status = ? AND ends_at <= ?", models.EventStatusActive, now).
		Find(&events).Error
	return events, err
}

func (s *GormEventStore) UpdateEventStatus(e *models.LimitedEvent, status models.EventStatus) error {
	e.Status = status
	return s.DB.Save(e).Error
}

// EventService manages limited-time incentive events. Handlers only ever
// read active events; status transitions are driven by the scheduler.
type EventService struct {
	Store EventStore
}

func NewEventService(store EventStore) *EventService {
	return &EventService{Store: store}
}

func (s *EventService) ActiveEvents() ([]models.LimitedEvent, error) {
	return s.Store.ActiveEvents()
}

// ScheduleEvent registers a new time-boxed event. The scheduler activates
// it once starts_at passes.
func (s *EventService) ScheduleEvent(code, title, description string, startsAt, endsAt time.Time) (*models.LimitedEvent, error) {
	event := models.LimitedEvent{
		ID:          uuid.NewString(),
		Code:        code,
		Title:       title,
		Description: description,
		Status:      models.EventStatusScheduled,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}
	if err := s.Store.InsertEvent(&event); err != nil {
		return nil, err
	}
	return &event, nil
}
