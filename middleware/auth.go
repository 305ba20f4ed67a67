package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
	"github.com/bbbang105/flowershop-admin-sub001/types"
)

// Claims represents the JWT claims (using shared types)
type Claims = types.Claims

// AuthMiddleware validates admin JWT tokens and sets the admin context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.AppConfig.JWT.Secret), nil
		})
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token claims",
				"message": "Token claims are invalid",
			})
			c.Abort()
			return
		}

		var admin models.AdminUser
		if err := database.DB.First(&admin, claims.AdminID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Admin not found",
				"message": "Admin associated with token not found",
			})
			c.Abort()
			return
		}

		if !admin.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Admin inactive",
				"message": "Admin account is deactivated",
			})
			c.Abort()
			return
		}

		c.Set("admin", admin)
		c.Set("admin_id", admin.ID)

		c.Next()
	}
}

// CronAuthMiddleware guards the reminder trigger endpoints with the shared
// cron secret. A missing or mismatched token is rejected before any query
// runs. An empty configured secret only passes outside release mode.
func CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := config.AppConfig.Cron.Secret
		if secret == "" {
			if config.AppConfig.Server.GinMode == "release" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Cron secret not configured"})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader ||
			subtle.ConstantTimeCompare([]byte(tokenString), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid cron token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
