package config

import (
	"log"

	"restaurant-pos-api/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the owner account on first boot. Skipped when
// ADMIN_EMAIL/ADMIN_PASSWORD are unset or the account already exists.
func SeedAdmin() error {
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("⚠️ skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         getEnv("ADMIN_NAME", "Owner"),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	// admins own themselves; staff created later inherit this owner id
	return DB.Model(&admin).Update("owner_id", admin.ID).Error
}
