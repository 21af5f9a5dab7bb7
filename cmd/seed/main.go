package main

import (
	"log"
	"os"

	"github.com/unibites/campus-bites/internal/config"
	"github.com/unibites/campus-bites/internal/database"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/utils"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	adminName := os.Getenv("ADMIN_NAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_NAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	// Check if admin with this email already exists
	var admin models.User
	result := database.DB.Where("email = ?", adminEmail).First(&admin)

	if result.Error == nil {
		log.Println("Admin user already exists:", admin.Name)
		log.Println("   Email:", admin.Email)
		return
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.User{
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		IsActive:     true,
		Role:         models.RoleAdmin,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created successfully!")
	log.Println("   Name:", admin.Name)
	log.Println("   Email:", admin.Email)
}
