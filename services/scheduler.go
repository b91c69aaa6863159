// services/scheduler.go
package services

import (
	"log"
	"time"

	"tournament-portal/models"

	"github.com/go-co-op/gocron/v2"
)

// StartStatusScheduler flips tournament status on registration window
// edges so listings never have to compute it per request.
func (s *TournamentService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			// coming_soon → open once registration starts
			var opening []models.Tournament
			err := s.DB.Where("status = ? AND registration_start <= ?", models.TournamentComingSoon, now).
				Find(&opening).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, t := range opening {
				t.Status = models.TournamentOpen
				if err := s.DB.Save(&t).Error; err != nil {
					log.Printf("[Scheduler] Failed to open tournament %s: %v", t.ID, err)
				} else {
					log.Printf("✅ Auto-opened tournament: %s", t.Title)
				}
			}

			// open → closed once the submission deadline (or registration
			// end, when no deadline is set) has passed
			var closing []models.Tournament
			// zero registration_end (never set) sorts before
			// registration_start, so the second branch skips it
			err = s.DB.Where(
				"status = ? AND ((submission_deadline IS NOT NULL AND submission_deadline <= ?) OR (submission_deadline IS NULL AND registration_end >= registration_start AND registration_end <= ?))",
				models.TournamentOpen, now, now,
			).Find(&closing).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, t := range closing {
				t.Status = models.TournamentClosed
				if err := s.DB.Save(&t).Error; err != nil {
					log.Printf("[Scheduler] Failed to close tournament %s: %v", t.ID, err)
				} else {
					log.Printf("✅ Auto-closed tournament: %s", t.Title)
				}
			}
		}),
	)
}
