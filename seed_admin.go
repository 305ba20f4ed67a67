package main

import (
	"log"
	"os"

	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
	"github.com/bbbang105/flowershop-admin-sub001/utils"
)

// seedAdminUser creates the initial admin account from ADMIN_USERNAME /
// ADMIN_PASSWORD on a fresh database. Does nothing once any admin exists.
func seedAdminUser() {
	var count int64
	if err := database.DB.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check admin users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("⚠️ No admin users exist and ADMIN_USERNAME/ADMIN_PASSWORD are not set, login will be impossible")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("❌ Failed to hash admin password: %v", err)
		return
	}

	admin := models.AdminUser{
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Printf("❌ Failed to create initial admin: %v", err)
		return
	}

	log.Printf("✅ Initial admin user %q created", username)
}
