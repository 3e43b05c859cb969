package services

import (
	"log"
	"time"

	"social-reward-system/models"
	"social-reward-system/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// StartMaintenanceScheduler runs the periodic housekeeping jobs: sweeping
// expired verification challenges and deactivating tasks whose day has
// rolled over.
func StartMaintenanceScheduler(db *gorm.DB) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 15 minutes: drop expired challenges so stale codes can never be
	// consumed and the table stays small.
	_, _ = sched.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() {
			res := db.Where("expires_at < ?", time.Now()).
				Delete(&models.VerificationChallenge{})
			if res.Error != nil {
				log.Printf("[Scheduler] challenge sweep failed: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("[Scheduler] swept %d expired challenge(s)", res.RowsAffected)
			}
		}),
	)

	// Every minute: retire task batches from previous task days.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			today := utils.TodayKey()
			res := db.Model(&models.Task{}).
				Where("active = ? AND batch_date < ?", true, today).
				Update("active", false)
			if res.Error != nil {
				log.Printf("[Scheduler] batch rollover failed: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("[Scheduler] deactivated %d task(s) from past batches", res.RowsAffected)
			}
		}),
	)
}
