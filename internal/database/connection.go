// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/makaohomes/makao-backend/internal/config"
	"github.com/makaohomes/makao-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool. The pool lives for the whole process;
	// repository calls borrow from it and never close it.
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Image{},
		&models.PropertyFeature{},
		&models.Page{},
		&models.ContentImage{},
		&models.Favorite{},
		&models.Review{},
		&models.Inquiry{},
		&models.Appointment{},
		&models.Viewing{},
		&models.BlogPost{},
		&models.SavedSearch{},
		&models.PropertyAlert{},
		&models.ActivityLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role_status ON users(role, status)",

		// Property indexes
		"CREATE INDEX IF NOT EXISTS idx_properties_status_type ON properties(status, property_type)",
		"CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price)",
		"CREATE INDEX IF NOT EXISTS idx_properties_featured_created ON properties(featured, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_properties_location_lower ON properties(LOWER(location))",

		// Image ordering
		"CREATE INDEX IF NOT EXISTS idx_images_property_order ON images(property_id, image_order)",
		"CREATE INDEX IF NOT EXISTS idx_content_images_page_section ON content_images(page_id, section_name, image_order)",

		// Engagement indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_property_status ON reviews(property_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_inquiries_status_created ON inquiries(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date, time_slot)",
		"CREATE INDEX IF NOT EXISTS idx_viewings_date ON viewings(date, time_slot)",
		"CREATE INDEX IF NOT EXISTS idx_blog_posts_status_published ON blog_posts(status, published_at DESC)",

		// Admin audit trail
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_user_action ON activity_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_resource ON activity_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_created ON activity_logs(created_at DESC)",

		// Full-text search index
		"CREATE INDEX IF NOT EXISTS idx_properties_search ON properties USING GIN(to_tsvector('english', title || ' ' || COALESCE(location, '') || ' ' || COALESCE(description, '')))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Name:   "Site Administrator",
			Email:  "admin@makaohomes.co.ke",
			Role:   models.UserRoleAdmin,
			Status: models.UserStatusActive,
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Create the homepage CMS document if it does not exist
	var homeCount int64
	db.Model(&models.Page{}).Where("slug = ?", "home").Count(&homeCount)

	if homeCount == 0 {
		home := &models.Page{
			Title:           "Home",
			Slug:            "home",
			Status:          models.PageStatusPublished,
			HeroTitle:       "Find Your Dream Home in Kenya",
			HeroSubtitle:    "Houses, apartments and land across the country",
			HeroDescription: "Browse verified listings with photos, amenities and neighbourhood details.",
			SEOTitle:        "Makao Homes | Property for Sale and Rent in Kenya",
			SEODescription:  "Verified houses, apartments, villas and land for sale and rent in Kenya.",
			SEOKeywords:     "kenya property, nairobi houses, apartments for rent",
		}

		if err := db.Create(home).Error; err != nil {
			return fmt.Errorf("failed to create homepage: %w", err)
		}

		log.Println("Homepage document created successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper. Every multi-statement repository sequence runs
// through here so a failure between steps rolls the whole unit back.
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
