package main

import (
	"fmt"
	"log"

	"github.com/Sakif-Hossain/cleanbooker/config"
	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/routes"
	"github.com/Sakif-Hossain/cleanbooker/services"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer config.CloseDB(db)

	if err := db.AutoMigrate(
		&models.Business{},
		&models.Customer{},
		&models.CustomerNote{},
		&models.Service{},
		&models.AddOn{},
		&models.Booking{},
		&models.BookingAddOn{},
		&models.Employee{},
		&models.Review{},
		&models.RefreshToken{},
		&models.ReminderLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.RemindersEnabled {
		reminders := services.NewReminderService(db)
		reminders.StartScheduler()
		defer reminders.Stop()
	}

	r := routes.SetupRouter(db, cfg.AllowedCORSOrigins)
	printRoutes(r)

	log.Printf("CleanBooker API listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
