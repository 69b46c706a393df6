package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Fausto-Grilo/VulnWebApp/auth"
	"github.com/Fausto-Grilo/VulnWebApp/config"
	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured store. SQLite is the embedded default;
// postgres and mysql take a DSN in DATABASE_URL.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// every connection to ":memory:" is a separate database
	if (driver == "" || driver == "sqlite") && strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates the users, products and orders tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{})
}

// Init opens, migrates and seeds the store described by cfg.
func Init(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if err := SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("⚠️ Admin seed skipped: %v", err)
	}
	if cfg.SeedSamples {
		if err := SeedProducts(db); err != nil {
			log.Printf("⚠️ Sample products not seeded: %v", err)
		}
	}
	return db, nil
}

// SeedAdmin creates the administrator account unless the email is taken.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{Name: "admin", Email: email, Password: hash, IsAdmin: 1}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("👤 Seeded admin account %s", email)
	return nil
}

var sampleProducts = []models.Product{
	{Name: "Classic Leather Wallet", Price: "$39.00", Img: "https://images.unsplash.com/photo-1519741497103-1837d4c7f4c6?auto=format&fit=crop&w=800&q=60", Tag: "accessories"},
	{Name: "Minimalist Wristwatch", Price: "$129.00", Img: "https://images.unsplash.com/photo-1518544884325-1f7b3f1b7c5b?auto=format&fit=crop&w=800&q=60", Tag: "watch"},
	{Name: "Canvas Tote Bag", Price: "$24.50", Img: "https://images.unsplash.com/photo-1520975911702-7f0b0cb9f9b3?auto=format&fit=crop&w=800&q=60", Tag: "bags"},
	{Name: "Bluetooth Earbuds", Price: "$59.99", Img: "https://images.unsplash.com/photo-1518444021847-16f6f8c2d5d2?auto=format&fit=crop&w=800&q=60", Tag: "electronics"},
	{Name: "Ceramic Coffee Mug", Price: "$14.00", Img: "https://images.unsplash.com/photo-1509042239860-f550ce710b93?auto=format&fit=crop&w=800&q=60", Tag: "home"},
	{Name: "Slim Laptop Sleeve", Price: "$29.00", Img: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?auto=format&fit=crop&w=800&q=60", Tag: "accessories"},
}

// SeedProducts fills an empty product table with the demo catalog.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := make([]models.Product, len(sampleProducts))
	copy(products, sampleProducts)
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return err
			}
		}
		log.Printf("📦 Seeded %d sample products", len(products))
		return nil
	})
}
