package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Memo  string `json:"memo"`
}

// GetCustomers returns customers, optionally filtered by a name/phone search
func GetCustomers(c *gin.Context) {
	query := database.DB.Order("name ASC")
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		log.Printf("❌ Failed to fetch customers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// CreateCustomer adds a customer record
func CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	customer := models.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Memo:  req.Memo,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		log.Printf("❌ Failed to create customer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Customer created successfully",
		"data":    customer,
	})
}

// UpdateCustomer edits a customer record
func UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, customerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			log.Printf("❌ Failed to load customer %s: %v", customerID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Memo = req.Memo

	if err := database.DB.Save(&customer).Error; err != nil {
		log.Printf("❌ Failed to update customer %s: %v", customerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer updated successfully",
		"data":    customer,
	})
}

// DeleteCustomer removes a customer record
func DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")

	result := database.DB.Delete(&models.Customer{}, customerID)
	if result.Error != nil {
		log.Printf("❌ Failed to delete customer %s: %v", customerID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer deleted",
	})
}
