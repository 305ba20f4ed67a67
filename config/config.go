package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Push       PushConfig
	Cron       CronConfig
	Cloudinary CloudinaryConfig
	Shop       ShopConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// PushConfig holds the VAPID key pair and contact identifier required by the
// web push protocol. Set once at startup, read-only afterwards.
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
}

// CronConfig holds the shared secret the external cron service must present
// when invoking the reminder trigger endpoints.
type CronConfig struct {
	Secret string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type ShopConfig struct {
	Timezone string
}

var AppConfig *Config

// Location is the shop's business timezone, resolved from ShopConfig.Timezone.
var Location *time.Location

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DB_URL", ""),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Push: PushConfig{
			VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
			VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
			Subscriber:      getEnv("VAPID_SUBSCRIBER", "mailto:admin@flowershop.local"),
		},
		Cron: CronConfig{
			Secret: getEnv("CRON_SECRET", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "flowershop/gallery"),
		},
		Shop: ShopConfig{
			Timezone: getEnv("SHOP_TIMEZONE", "Asia/Seoul"),
		},
	}

	loc, err := time.LoadLocation(AppConfig.Shop.Timezone)
	if err != nil {
		log.Printf("⚠️ Invalid SHOP_TIMEZONE %q, falling back to UTC: %v", AppConfig.Shop.Timezone, err)
		loc = time.UTC
	}
	Location = loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
