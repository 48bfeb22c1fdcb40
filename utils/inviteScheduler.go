package utils

import (
	"basic/database"
	"basic/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeInviteScheduler sets up the invite expiry scheduler. Expiry is
// also applied lazily on validation; the sweep keeps admin listings accurate
// for invites nobody ever tries to use.
func InitializeInviteScheduler() *cron.Cron {
	log.Println("[INVITE-SCHEDULER] Initializing invite scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[INVITE-SCHEDULER] Running daily invite expiry sweep...")
		ExpireOverdueInvites()
	})

	c.Start()
	log.Println("[INVITE-SCHEDULER] Invite scheduler started - runs daily at 3 AM")
	return c
}

// ExpireOverdueInvites flips every PENDING invite past its expiry to EXPIRED
func ExpireOverdueInvites() {
	db := database.Database.Db

	result := db.Model(&models.Invite{}).
		Where("status = ? AND expires_at < ?", models.InviteStatusPending, time.Now()).
		Update("status", models.InviteStatusExpired)

	if result.Error != nil {
		log.Printf("[INVITE-SCHEDULER] Error expiring invites: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[INVITE-SCHEDULER] Expired %d overdue invite(s)", result.RowsAffected)
	}
}
