package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("no .env file found, using process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Contract{},
		&models.Alert{},
		&models.Attachment{},
		&models.AuditLog{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	seedAdmin()
}

// seedAdmin makes sure a usable admin login exists after a fresh deploy.
// The password is reset on every boot so a lost credential never locks
// the instance out.
func seedAdmin() {
	email := GetEnv("ADMIN_EMAIL", "admin@local.com")
	pass := GetEnv("ADMIN_PASSWORD", "admin123")

	hash, err := utils.HashPassword(pass)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	var admin models.User
	err = DB.Where("email = ?", email).First(&admin).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Admin lookup failed: %v", err)
		}
		admin = models.User{Name: "Administrator", Email: email, Password: hash, Role: models.RoleAdmin}
		if err := DB.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
		log.Printf("[Init] Admin user created: %s", email)
		return
	}

	admin.Password = hash
	admin.Role = models.RoleAdmin
	if err := DB.Save(&admin).Error; err != nil {
		log.Fatalf("Failed to update admin user: %v", err)
	}
	log.Printf("[Init] Admin access ensured: %s", email)
}

func GetEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func GetEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
