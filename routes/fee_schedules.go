package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

type feeScheduleRequest struct {
	Name        string  `json:"name" binding:"required"`
	FeeRate     float64 `json:"fee_rate"`
	DepositDays int     `json:"deposit_days"`
	IsActive    *bool   `json:"is_active"`
}

func (r *feeScheduleRequest) validate() string {
	if r.FeeRate < 0 || r.FeeRate > 100 {
		return "fee_rate must be between 0 and 100"
	}
	if r.DepositDays < 0 || r.DepositDays > 365 {
		return "deposit_days must be between 0 and 365"
	}
	return ""
}

// GetFeeSchedules returns all card fee schedules. Pass active=true to get
// only the processors offered on the new-sale form.
func GetFeeSchedules(c *gin.Context) {
	query := database.DB.Order("name ASC")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var schedules []models.CardFeeSchedule
	if err := query.Find(&schedules).Error; err != nil {
		log.Printf("❌ Failed to fetch fee schedules: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fee schedules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    schedules,
	})
}

// CreateFeeSchedule adds a card processor entry
func CreateFeeSchedule(c *gin.Context) {
	var req feeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	schedule := models.CardFeeSchedule{
		Name:        req.Name,
		FeeRate:     req.FeeRate,
		DepositDays: req.DepositDays,
		IsActive:    true,
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&schedule).Error; err != nil {
		log.Printf("❌ Failed to create fee schedule %s: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fee schedule"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Fee schedule created successfully",
		"data":    schedule,
	})
}

// UpdateFeeSchedule edits a card processor entry. Historic sales keep the
// snapshots they were created with; only future sales see the new rate.
func UpdateFeeSchedule(c *gin.Context) {
	scheduleID := c.Param("id")

	var req feeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var schedule models.CardFeeSchedule
	if err := database.DB.First(&schedule, scheduleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fee schedule not found"})
		} else {
			log.Printf("❌ Failed to load fee schedule %s: %v", scheduleID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	schedule.Name = req.Name
	schedule.FeeRate = req.FeeRate
	schedule.DepositDays = req.DepositDays
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&schedule).Error; err != nil {
		log.Printf("❌ Failed to update fee schedule %s: %v", scheduleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fee schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fee schedule updated successfully",
		"data":    schedule,
	})
}
