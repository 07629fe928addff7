package config

import (
	"log"
	"os"
	"strconv"

	"restaurant-pos-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, read from env or fallback
var JWTSecret []byte

// Default tax rates applied to new drafts when the branch has none set
var (
	DefaultSGSTRate = 9.0
	DefaultCGSTRate = 9.0
)

// Load reads .env (if present) and resolves all settings
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	JWTSecret = []byte(getEnv("JWT_SECRET", "restro_pos_super_secret_2024"))
	DefaultSGSTRate = getEnvFloat("DEFAULT_SGST_RATE", 9.0)
	DefaultCGSTRate = getEnvFloat("DEFAULT_CGST_RATE", 9.0)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "restro_pos.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	Migrate(DB)
	log.Println("✅ Database connected and migrated successfully")
}

// Migrate runs the schema migration; split out so tests can run it
// against their own in-memory database.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Branch{},
		&models.DiningTable{},
		&models.MenuItem{},
		&models.MenuItemVariant{},
		&models.PendingOrder{},
		&models.PendingOrderItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
		&models.Supplier{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}
