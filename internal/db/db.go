package db

import (
	"log"
	"os"

	"campuslink/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=campuslink port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
}

// Migrate runs the schema migration on the given connection.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Report{},
	)
}

// InitForTesting swaps the global connection, letting tests run against an
// in-memory database.
func InitForTesting(conn *gorm.DB) {
	DB = conn
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "Academics", Description: "Courses, curriculum and exam talk"},
		{Name: "Campus Life", Description: "Everyday life around campus"},
		{Name: "Events", Description: "Upcoming events and announcements"},
		{Name: "Question", Description: "Ask the community"},
		{Name: "Complaint", Description: "Something broken? Say so here"},
		{Name: "Discussion", Description: "Open-ended discussions"},
		{Name: "Other", Description: "Everything else"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}
