package main

import (
	"context"
	"log"
	"os"

	"github.com/inanin-user/crm-system-sub001/internal/config"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminPassword == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err != nil {
				log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	var existingAdmin models.Account
	result := repositories.DB.Where("username = ?", adminUsername).First(&existingAdmin)
	if result.Error == nil {
		log.Println("Admin account already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.Account{
		Username:     adminUsername,
		Password:     string(hashedPassword),
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin account:", err)
	}

	if repositories.CacheService != nil {
		if err := repositories.CacheService.InvalidateAccount(context.Background(), admin.ID); err != nil {
			log.Printf("⚠️ Failed to invalidate admin cache: %v", err)
		}
	}

	log.Println("✅ Admin account created successfully!")
}
