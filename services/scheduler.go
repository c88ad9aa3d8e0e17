package services

import (
	"log"
	"time"

	"badge-rally-system/models"

	"github.com/go-co-op/gocron/v2"
)

func (s *EventService) StartEventScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: flip event statuses that crossed their window bounds
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			s.RollEventWindows(time.Now())
		}),
	)
}

// RollEventWindows activates scheduled events whose start has passed and
// ends active events whose end has passed, as of the given instant.
func (s *EventService) RollEventWindows(now time.Time) {
	starting, err := s.Store.EventsStartingBy(now)
	if err != nil {
		log.Printf("[EventScheduler] DB error: %v", err)
		return
	}
	for _, e := range starting {
		if err := s.Store.UpdateEventStatus(&e, models.EventStatusActive); err != nil {
			log.Printf("[EventScheduler] Failed to activate event %s: %v", e.Code, err)
		} else {
			log.Printf("✅ Event now active: %s", e.Title)
		}
	}

	ending, err := s.Store.EventsEndingBy(now)
	if err != nil {
		log.Printf("[EventScheduler] DB error: %v", err)
		return
	}
	for _, e := range ending {
		if err := s.Store.UpdateEventStatus(&e, models.EventStatusEnded); err != nil {
			log.Printf("[EventScheduler] Failed to end event %s: %v", e.Code, err)
		} else {
			log.Printf("🌙 Event ended: %s", e.Title)
		}
	}
}
