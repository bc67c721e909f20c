package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hanifkurn/ventix/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Category{}, &models.Event{}, &models.Purchase{}, &models.LineItem{})
	if err != nil {
		return nil, err
	}

	seedCatalog(db)

	return db, nil
}

// seedCatalog loads the starting taxonomy and events on first boot. Seeding
// is idempotent by title; catalog management itself belongs to another
// service and never runs through this one.
func seedCatalog(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Webinar", Description: "Online educational sessions"},
		{Name: "Concert", Description: "Live musical performances"},
		{Name: "Workshop", Description: "Interactive training sessions"},
		{Name: "Conference", Description: "Professional Meetings"},
	}

	byName := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		var existing models.Category
		result := db.Where("name = ?", category.Name).First(&existing)
		if result.Error != nil {
			db.Create(&category)
			existing = category
		}
		byName[existing.Name] = existing
	}

	events := []models.Event{
		{
			Title:            "C# Fundamentals",
			StartTime:        time.Now().AddDate(0, 0, 5),
			TicketPrice:      decimal.RequireFromString("15.99"),
			AvailableTickets: 10,
			CategoryID:       byName["Webinar"].ID,
		},
		{
			Title:            "Rock Night Live",
			StartTime:        time.Now().AddDate(0, 0, 10),
			TicketPrice:      decimal.RequireFromString("30.00"),
			AvailableTickets: 3,
			CategoryID:       byName["Concert"].ID,
		},
		{
			Title:            "UI/UX Workshop",
			StartTime:        time.Now().AddDate(0, 0, 15),
			TicketPrice:      decimal.RequireFromString("25.50"),
			AvailableTickets: 8,
			CategoryID:       byName["Workshop"].ID,
		},
	}

	for _, event := range events {
		var existing models.Event
		result := db.Where("title = ?", event.Title).First(&existing)
		if result.Error != nil {
			db.Create(&event)
		}
	}
}
