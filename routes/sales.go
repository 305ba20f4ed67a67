package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
	"github.com/bbbang105/flowershop-admin-sub001/services"
)

type saleRequest struct {
	SaleDate      string               `json:"sale_date" binding:"required"` // YYYY-MM-DD
	Amount        int64                `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	CardCompany   string               `json:"card_company"`
	Item          string               `json:"item"`
	Memo          string               `json:"memo"`
}

// GetSales returns sales for a month, newest first
func GetSales(c *gin.Context) {
	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sales []models.Sale
	if err := database.DB.
		Where("sale_date >= ? AND sale_date < ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("sale_date DESC, id DESC").
		Find(&sales).Error; err != nil {
		log.Printf("❌ Failed to fetch sales: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sales,
	})
}

// CreateSale records a sale and snapshots its fee/deposit fields from the fee
// schedule currently in effect. The snapshot is final: later schedule edits
// never touch it.
func CreateSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}

	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale_date, expected YYYY-MM-DD"})
		return
	}

	schedule, err := loadFeeSchedule()
	if err != nil {
		log.Printf("❌ Failed to load fee schedule: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load fee schedule"})
		return
	}

	deposit := services.ComputeDeposit(req.Amount, req.PaymentMethod, req.CardCompany, saleDate, schedule)

	sale := models.Sale{
		SaleDate:            saleDate,
		Amount:              req.Amount,
		PaymentMethod:       req.PaymentMethod,
		CardCompany:         req.CardCompany,
		Item:                req.Item,
		Memo:                req.Memo,
		Fee:                 deposit.Fee,
		ExpectedDeposit:     deposit.ExpectedDeposit,
		ExpectedDepositDate: deposit.ExpectedDepositDate,
		DepositStatus:       deposit.DepositStatus,
	}
	if sale.PaymentMethod != models.PaymentMethodCard {
		sale.CardCompany = ""
	}

	if err := database.DB.Create(&sale).Error; err != nil {
		log.Printf("❌ Failed to create sale: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		return
	}

	log.Printf("✅ Sale created: %d KRW via %s (ID: %d)", sale.Amount, sale.PaymentMethod, sale.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Sale created successfully",
		"data":    sale,
	})
}

// UpdateSale amends a sale. Amount, method or card company changes on a
// not-yet-completed sale recompute the deposit snapshot against the current
// schedule; completed sales only accept item/memo edits.
func UpdateSale(c *gin.Context) {
	saleID := c.Param("id")

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}

	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale_date, expected YYYY-MM-DD"})
		return
	}

	var sale models.Sale
	if err := database.DB.First(&sale, saleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	if sale.DepositStatus == models.DepositStatusCompleted {
		if req.Amount != sale.Amount || req.PaymentMethod != sale.PaymentMethod || req.CardCompany != sale.CardCompany {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change amount or payment of a sale whose deposit is completed"})
			return
		}
		sale.Item = req.Item
		sale.Memo = req.Memo
		sale.SaleDate = saleDate
	} else {
		schedule, err := loadFeeSchedule()
		if err != nil {
			log.Printf("❌ Failed to load fee schedule: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load fee schedule"})
			return
		}

		deposit := services.ComputeDeposit(req.Amount, req.PaymentMethod, req.CardCompany, saleDate, schedule)

		sale.SaleDate = saleDate
		sale.Amount = req.Amount
		sale.PaymentMethod = req.PaymentMethod
		sale.CardCompany = req.CardCompany
		sale.Item = req.Item
		sale.Memo = req.Memo
		sale.Fee = deposit.Fee
		sale.ExpectedDeposit = deposit.ExpectedDeposit
		sale.ExpectedDepositDate = deposit.ExpectedDepositDate
		sale.DepositStatus = deposit.DepositStatus
		sale.DepositedAt = nil
		if sale.PaymentMethod != models.PaymentMethodCard {
			sale.CardCompany = ""
		}
	}

	if err := database.DB.Save(&sale).Error; err != nil {
		log.Printf("❌ Failed to update sale %s: %v", saleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sale updated successfully",
		"data":    sale,
	})
}

// GetSalesSummary returns the month's totals by payment method
func GetSalesSummary(c *gin.Context) {
	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rows []struct {
		PaymentMethod models.PaymentMethod `json:"payment_method"`
		Total         int64                `json:"total"`
		Count         int64                `json:"count"`
	}
	if err := database.DB.Model(&models.Sale{}).
		Select("payment_method, COALESCE(SUM(amount),0) AS total, COUNT(*) AS count").
		Where("sale_date >= ? AND sale_date < ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Group("payment_method").
		Scan(&rows).Error; err != nil {
		log.Printf("❌ Failed to fetch sales summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales summary"})
		return
	}

	var total int64
	for _, row := range rows {
		total += row.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"total":     total,
		"by_method": rows,
	})
}

func loadFeeSchedule() ([]models.CardFeeSchedule, error) {
	var schedule []models.CardFeeSchedule
	err := database.DB.Find(&schedule).Error
	return schedule, err
}
