package jobs

import (
	"log"
	"time"

	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// staleAfter is how long a deactivated subscription sits before it is removed
// for good. A device that resubscribes earlier reactivates the same row.
const staleAfter = 90 * 24 * time.Hour

// SubscriptionCleanupJob removes push subscriptions that have been inactive
// long enough that the device is clearly not coming back.
type SubscriptionCleanupJob struct {
	stopChan chan bool
}

// NewSubscriptionCleanupJob creates a new cleanup job
func NewSubscriptionCleanupJob() *SubscriptionCleanupJob {
	return &SubscriptionCleanupJob{
		stopChan: make(chan bool),
	}
}

// Start begins the cleanup job
func (j *SubscriptionCleanupJob) Start() {
	go j.run()
	log.Println("🚀 Subscription cleanup job started")
}

// Stop stops the cleanup job
func (j *SubscriptionCleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Subscription cleanup job stopped")
}

func (j *SubscriptionCleanupJob) run() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.removeStaleSubscriptions()
		case <-j.stopChan:
			return
		}
	}
}

func (j *SubscriptionCleanupJob) removeStaleSubscriptions() {
	cutoff := time.Now().Add(-staleAfter)

	result := database.DB.
		Where("is_active = ? AND updated_at < ?", false, cutoff).
		Delete(&models.PushSubscription{})
	if result.Error != nil {
		log.Printf("❌ Error removing stale push subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Removed %d stale push subscriptions", result.RowsAffected)
	}
}
