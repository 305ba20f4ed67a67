package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// GetVAPIDPublicKey hands the browser the key it needs to subscribe
func GetVAPIDPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"public_key": config.AppConfig.Push.VAPIDPublicKey,
	})
}

// RegisterPushSubscription stores a browser push subscription. Resubscribing
// an endpoint the transport had rejected reactivates it with fresh keys.
func RegisterPushSubscription(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription format"})
		return
	}

	sub := models.PushSubscription{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
		IsActive: true,
	}

	err := database.DB.Create(&sub).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			// Endpoint already known, refresh keys and reactivate
			if err := database.DB.Model(&models.PushSubscription{}).
				Where("endpoint = ?", req.Endpoint).
				Updates(map[string]interface{}{
					"p256dh":    req.Keys.P256dh,
					"auth":      req.Keys.Auth,
					"is_active": true,
				}).Error; err != nil {
				log.Printf("❌ Failed to refresh push subscription: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register subscription"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Subscription refreshed",
			})
			return
		}

		log.Printf("❌ Failed to create push subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register subscription"})
		return
	}

	log.Printf("✅ Push subscription registered (ID: %d)", sub.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Subscription registered",
	})
}

// UnregisterPushSubscription deactivates the subscription for an endpoint
func UnregisterPushSubscription(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	if err := database.DB.Model(&models.PushSubscription{}).
		Where("endpoint = ?", req.Endpoint).
		Update("is_active", false).Error; err != nil {
		log.Printf("❌ Failed to unregister push subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unregister subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Subscription deactivated",
	})
}
