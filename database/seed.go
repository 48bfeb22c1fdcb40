package database

import (
	"basic/config"
	"basic/models"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultAdmin creates the configured admin account on first boot so the
// platform is never left without an administrator.
func SeedDefaultAdmin() {
	db := Database.Db
	email := strings.ToLower(config.AppConfig.AdminEmail)

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists, skipping seed.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing seed admin password: %v", err)
		return
	}

	admin := models.User{
		Name:     "Administrador",
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin user: %v", err)
		return
	}

	log.Printf("Admin user created: %s", email)
}
