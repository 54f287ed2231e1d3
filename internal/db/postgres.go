package db

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
)

var DB *gorm.DB

func Init() {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_USER", "test"),
		getEnv("POSTGRES_PASSWORD", "test"),
		getEnv("POSTGRES_DB", "test"),
		getEnv("DB_PORT", "5432"),
	)

	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {

		log.Fatalf("Failed to connect to DB: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)

	if err != nil {

		log.Fatalf("Failed to migrate DB: %v", err)
	}

	if err := SeedDefaults(DB); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	log.Println("Database connected and migrated successfully")
}

// SeedDefaults creates the three roles and the default produce categories
// when the tables are empty. Safe to call on every startup.
func SeedDefaults(gdb *gorm.DB) error {

	var roleCount int64
	if err := gdb.Model(&models.Role{}).Count(&roleCount).Error; err != nil {
		return err
	}
	if roleCount == 0 {
		for _, name := range []string{models.RoleAdmin, models.RoleFarmer, models.RoleCustomer} {
			if err := gdb.Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		}
		log.Println("Default roles created")
	}

	var categoryCount int64
	if err := gdb.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		for _, name := range []string{"Milk", "Curd", "Ghee", "Butter", "Cheese", "Paneer"} {
			if err := gdb.Create(&models.Category{Name: name}).Error; err != nil {
				return err
			}
		}
		log.Println("Default categories created")
	}

	return nil
}

func SetTestDB(testDB *gorm.DB) {
	DB = testDB
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
