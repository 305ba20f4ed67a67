package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

type reservationRequest struct {
	Date            string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time            *string `json:"time"`                    // HH:MM
	CustomerName    string  `json:"customer_name" binding:"required"`
	EstimatedAmount int64   `json:"estimated_amount"`
	Memo            string  `json:"memo"`
	Status          string  `json:"status"`
	ReminderAt      *string `json:"reminder_at"`   // RFC 3339
	ReminderDate    *string `json:"reminder_date"` // YYYY-MM-DD
}

func validReservationStatus(s string) bool {
	switch models.ReservationStatus(s) {
	case models.ReservationStatusPending, models.ReservationStatusConfirmed,
		models.ReservationStatusCompleted, models.ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

func (r *reservationRequest) apply(resv *models.Reservation) (string, bool) {
	date, err := parseDate(r.Date)
	if err != nil {
		return "Invalid date, expected YYYY-MM-DD", false
	}
	if r.EstimatedAmount < 0 {
		return "estimated_amount must not be negative", false
	}
	if r.Status != "" && !validReservationStatus(r.Status) {
		return "Unknown status", false
	}
	if r.Time != nil && *r.Time != "" {
		if _, err := time.Parse("15:04", *r.Time); err != nil {
			return "Invalid time, expected HH:MM", false
		}
	}

	resv.Date = date
	resv.Time = r.Time
	resv.CustomerName = r.CustomerName
	resv.EstimatedAmount = r.EstimatedAmount
	resv.Memo = r.Memo
	if r.Status != "" {
		resv.Status = models.ReservationStatus(r.Status)
	}

	resv.ReminderAt = nil
	if r.ReminderAt != nil && *r.ReminderAt != "" {
		at, err := time.Parse(time.RFC3339, *r.ReminderAt)
		if err != nil {
			return "Invalid reminder_at, expected RFC 3339 timestamp", false
		}
		local := at.In(config.Location)
		resv.ReminderAt = &local
	}

	resv.ReminderDate = nil
	if r.ReminderDate != nil && *r.ReminderDate != "" {
		rd, err := parseDate(*r.ReminderDate)
		if err != nil {
			return "Invalid reminder_date, expected YYYY-MM-DD", false
		}
		resv.ReminderDate = &rd
	}

	return "", true
}

// GetReservations returns reservations for a month, earliest first
func GetReservations(c *gin.Context) {
	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reservations []models.Reservation
	if err := database.DB.
		Where("date >= ? AND date < ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC, time ASC NULLS LAST").
		Find(&reservations).Error; err != nil {
		log.Printf("❌ Failed to fetch reservations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// CreateReservation adds a reservation to the calendar
func CreateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resv := models.Reservation{Status: models.ReservationStatusPending}
	if msg, ok := req.apply(&resv); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := database.DB.Create(&resv).Error; err != nil {
		log.Printf("❌ Failed to create reservation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	log.Printf("✅ Reservation created for %s on %s (ID: %d)", resv.CustomerName, req.Date, resv.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Reservation created successfully",
		"data":    resv,
	})
}

// UpdateReservation edits a reservation, including its reminder triggers
func UpdateReservation(c *gin.Context) {
	reservationID := c.Param("id")

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var resv models.Reservation
	if err := database.DB.First(&resv, reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		} else {
			log.Printf("❌ Failed to load reservation %s: %v", reservationID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if msg, ok := req.apply(&resv); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := database.DB.Save(&resv).Error; err != nil {
		log.Printf("❌ Failed to update reservation %s: %v", reservationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reservation updated successfully",
		"data":    resv,
	})
}

// CancelReservation cancels a reservation and drops any pending reminders so
// the sweeps never pick it up.
func CancelReservation(c *gin.Context) {
	reservationID := c.Param("id")

	var resv models.Reservation
	if err := database.DB.First(&resv, reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		} else {
			log.Printf("❌ Failed to load reservation %s: %v", reservationID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if err := database.DB.Model(&resv).
		Updates(map[string]interface{}{
			"status":        models.ReservationStatusCancelled,
			"reminder_at":   nil,
			"reminder_date": nil,
		}).Error; err != nil {
		log.Printf("❌ Failed to cancel reservation %s: %v", reservationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reservation cancelled",
	})
}
