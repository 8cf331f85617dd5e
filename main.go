package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"restobot/internal/bot"
	"restobot/internal/config"
	"restobot/internal/database"
	"restobot/internal/handlers"
	"restobot/internal/middleware"
	"restobot/internal/session"
	"restobot/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("⚠️ admin index warning: %v", err)
	}

	sessions := session.NewStore()
	sessions.Start(config.AppEnv.SessionTTL, config.AppEnv.SessionSweep)
	defer sessions.Stop()

	controller := bot.New(sessions, store.NewMongo(db), bot.Config{
		RestaurantName:  config.AppEnv.RestaurantName,
		RestaurantPhone: config.AppEnv.RestaurantPhone,
		DeliveryFee:     config.AppEnv.DeliveryFee,
		MinOrderAmount:  config.AppEnv.MinOrderAmount,
		PointsPerUnit:   config.AppEnv.PointsPerUnit,
		WelcomeBonus:    config.AppEnv.WelcomeBonus,
		DeliveryDelay:   config.AppEnv.DeliveryDelay,
	})

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	r.POST("/webhook", handlers.Webhook(controller))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/orders", handlers.GetAdminOrders(db))
		admin.PATCH("/orders/:number/status", handlers.UpdateOrderStatus(db))
		admin.GET("/stats/daily", handlers.GetDailyStats(db))
		admin.GET("/users/:chatId", handlers.GetAdminUser(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
