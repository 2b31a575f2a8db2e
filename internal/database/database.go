package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the CGO-free "sqlite" database/sql driver used below.
	_ "modernc.org/sqlite"

	"studyhub/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate applies the additive schema for all collections. The store is used
// document-style (field-equality lookups, JSON-serialized arrays), so this is
// the only migration step the service needs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Group{},
		&domain.User{},
		&domain.Course{},
		&domain.Post{},
		&domain.StudyPlan{},
		&domain.PaperRecord{},
	)
}
