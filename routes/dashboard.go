package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// GetDashboardStats returns the month's headline numbers for the main page
func GetDashboardStats(c *gin.Context) {
	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startStr, endStr := start.Format("2006-01-02"), end.Format("2006-01-02")

	var stats struct {
		SalesTotal           int64 `json:"sales_total"`
		SalesCount           int64 `json:"sales_count"`
		CardFeeTotal         int64 `json:"card_fee_total"`
		ExpenseTotal         int64 `json:"expense_total"`
		PendingDepositTotal  int64 `json:"pending_deposit_total"`
		PendingDepositCount  int64 `json:"pending_deposit_count"`
		UpcomingReservations int64 `json:"upcoming_reservations"`
	}

	if err := database.DB.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", startStr, endStr).
		Select("COALESCE(SUM(amount),0)").Scan(&stats.SalesTotal).Error; err != nil {
		log.Printf("❌ Failed to compute dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	database.DB.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", startStr, endStr).
		Count(&stats.SalesCount)
	database.DB.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", startStr, endStr).
		Select("COALESCE(SUM(fee),0)").Scan(&stats.CardFeeTotal)
	database.DB.Model(&models.Expense{}).
		Where("date >= ? AND date < ?", startStr, endStr).
		Select("COALESCE(SUM(amount),0)").Scan(&stats.ExpenseTotal)

	database.DB.Model(&models.Sale{}).
		Where("deposit_status = ?", models.DepositStatusPending).
		Select("COALESCE(SUM(expected_deposit),0)").Scan(&stats.PendingDepositTotal)
	database.DB.Model(&models.Sale{}).
		Where("deposit_status = ?", models.DepositStatusPending).
		Count(&stats.PendingDepositCount)

	today := time.Now().In(config.Location).Format("2006-01-02")
	weekLater := time.Now().In(config.Location).AddDate(0, 0, 7).Format("2006-01-02")
	database.DB.Model(&models.Reservation{}).
		Where("date >= ? AND date <= ? AND status NOT IN ?", today, weekLater,
			[]string{string(models.ReservationStatusCancelled), string(models.ReservationStatusCompleted)}).
		Count(&stats.UpcomingReservations)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
