package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// GetDepositLedger returns the month's card sales partitioned by deposit
// status. Non-card sales are not_applicable and never appear here.
func GetDepositLedger(c *gin.Context) {
	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base := func() *gorm.DB {
		return database.DB.
			Where("payment_method = ?", models.PaymentMethodCard).
			Where("sale_date >= ? AND sale_date < ?", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	var pending, completed []models.Sale
	if err := base().Where("deposit_status = ?", models.DepositStatusPending).
		Order("expected_deposit_date ASC, id ASC").Find(&pending).Error; err != nil {
		log.Printf("❌ Failed to fetch pending deposits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposits"})
		return
	}
	if err := base().Where("deposit_status = ?", models.DepositStatusCompleted).
		Order("deposited_at DESC, id DESC").Find(&completed).Error; err != nil {
		log.Printf("❌ Failed to fetch completed deposits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposits"})
		return
	}

	var pendingTotal, completedTotal int64
	for _, s := range pending {
		pendingTotal += s.ExpectedDeposit
	}
	for _, s := range completed {
		completedTotal += s.ExpectedDeposit
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"pending":         pending,
		"completed":       completed,
		"pending_total":   pendingTotal,
		"completed_total": completedTotal,
	})
}

// ConfirmDeposits marks the given sales as deposited. Each row is updated
// independently: unknown ids and already-completed sales are skipped, and a
// partial failure leaves a mixed result, so the caller should re-query the
// ledger rather than trust the request succeeded wholesale.
func ConfirmDeposits(c *gin.Context) {
	var req struct {
		IDs []uint `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids array is required"})
		return
	}

	now := time.Now()
	confirmed := 0
	skipped := 0
	for _, id := range req.IDs {
		var sale models.Sale
		err := database.DB.First(&sale, id).Error
		if err == gorm.ErrRecordNotFound {
			skipped++
			continue
		}
		if err != nil {
			log.Printf("❌ Failed to load sale %d for confirm: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm deposits"})
			return
		}

		if !sale.MarkDeposited(now) {
			skipped++
			continue
		}

		if err := database.DB.Save(&sale).Error; err != nil {
			log.Printf("❌ Failed to confirm deposit for sale %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm deposits"})
			return
		}
		confirmed++
	}

	log.Printf("✅ Deposits confirmed: %d of %d (skipped %d)", confirmed, len(req.IDs), skipped)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Deposits confirmed",
		"confirmed": confirmed,
		"skipped":   skipped,
	})
}

// RevertDeposit moves a completed deposit back to pending and clears its
// timestamp. Reverting a pending sale is a no-op. The fee and expected
// deposit snapshots are never recomputed here.
func RevertDeposit(c *gin.Context) {
	saleID := c.Param("id")

	var sale models.Sale
	if err := database.DB.First(&sale, saleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		} else {
			log.Printf("❌ Failed to load sale %s for revert: %v", saleID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if sale.RevertDeposit() {
		if err := database.DB.Model(&sale).
			Select("deposit_status", "deposited_at").
			Updates(map[string]interface{}{
				"deposit_status": sale.DepositStatus,
				"deposited_at":   nil,
			}).Error; err != nil {
			log.Printf("❌ Failed to revert deposit for sale %s: %v", saleID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revert deposit"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Deposit reverted",
		"data":    sale,
	})
}
