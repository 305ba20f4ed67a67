package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bbbang105/flowershop-admin-sub001/services"
)

var reminderService = services.NewReminderService(services.NewPushDispatcher())

// RunHourlyReminders is the external cron's hourly trigger. Auth is enforced
// by CronAuthMiddleware before this runs.
func RunHourlyReminders(c *gin.Context) {
	result, err := reminderService.RunHourlySweep(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Hourly reminder sweep completed",
		"reminders": result.Reminders,
		"sent":      result.Sent,
		"failed":    result.Failed,
	})
}

// RunDailyReminders is the external cron's 08:00 trigger
func RunDailyReminders(c *gin.Context) {
	result, err := reminderService.RunDailySweep(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Daily reminder sweep completed",
		"today_reservations": result.TodayReservations,
		"advance_reminders":  result.AdvanceReminders,
		"sent":               result.Sent,
		"failed":             result.Failed,
	})
}

// SendTestNotification pushes a test payload to every active subscription so
// the admin can verify their browser is wired up.
func SendTestNotification(c *gin.Context) {
	dispatcher := services.NewPushDispatcher()
	result, err := dispatcher.SendToAllActive(`{"title":"🌸 Test notification","body":"Push notifications are working."}`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test notification"})
		return
	}

	log.Printf("✅ Test notification: %d sent, %d failed", result.Sent, result.Failed)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sent":    result.Sent,
		"failed":  result.Failed,
	})
}
