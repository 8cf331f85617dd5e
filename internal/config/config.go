package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI        string
	DBName          string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RestaurantName  string
	RestaurantPhone string

	// Order economics, whole currency units.
	DeliveryFee    int
	MinOrderAmount int
	PointsPerUnit  int
	WelcomeBonus   int

	SessionTTL    time.Duration
	SessionSweep  time.Duration
	DeliveryDelay time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "restobot"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:  getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),
		RestaurantName:  getEnvOrDefault("RESTAURANT_NAME", "The Sample Restaurant"),
		RestaurantPhone: getEnvOrDefault("RESTAURANT_PHONE", "03-1234567"),
		DeliveryFee:     getIntEnv("DELIVERY_FEE", 15),
		MinOrderAmount:  getIntEnv("MIN_ORDER_AMOUNT", 50),
		PointsPerUnit:   getIntEnv("POINTS_PER_UNIT", 5),
		WelcomeBonus:    getIntEnv("WELCOME_BONUS_POINTS", 50),
		SessionTTL:      getDurationEnv("SESSION_TTL", 60, time.Minute),
		SessionSweep:    getDurationEnv("SESSION_SWEEP_INTERVAL", 15, time.Minute),
		DeliveryDelay:   getDurationEnv("DELIVERY_DELAY", 45, time.Minute),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
