package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

type expenseRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Amount   int64  `json:"amount"`
	Category string `json:"category"`
	Memo     string `json:"memo"`
}

// GetExpenses returns expenses for a month, newest first
func GetExpenses(c *gin.Context) {
	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expenses []models.Expense
	if err := database.DB.
		Where("date >= ? AND date < ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		log.Printf("❌ Failed to fetch expenses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	var total int64
	for _, e := range expenses {
		total += e.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    expenses,
		"total":   total,
	})
}

// CreateExpense records an expense
func CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	expense := models.Expense{
		Date:     date,
		Amount:   req.Amount,
		Category: req.Category,
		Memo:     req.Memo,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		log.Printf("❌ Failed to create expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Expense created successfully",
		"data":    expense,
	})
}

// UpdateExpense edits an expense
func UpdateExpense(c *gin.Context) {
	expenseID := c.Param("id")

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			log.Printf("❌ Failed to load expense %s: %v", expenseID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	expense.Date = date
	expense.Amount = req.Amount
	expense.Category = req.Category
	expense.Memo = req.Memo

	if err := database.DB.Save(&expense).Error; err != nil {
		log.Printf("❌ Failed to update expense %s: %v", expenseID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Expense updated successfully",
		"data":    expense,
	})
}

// DeleteExpense removes an expense
func DeleteExpense(c *gin.Context) {
	expenseID := c.Param("id")

	result := database.DB.Delete(&models.Expense{}, expenseID)
	if result.Error != nil {
		log.Printf("❌ Failed to delete expense %s: %v", expenseID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Expense deleted",
	})
}
