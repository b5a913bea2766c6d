package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// registers the pure-Go "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"mediakit/internal/domain"
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

// Migrate creates the full rate-card hierarchy plus the peer tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Agency{},
		&domain.Listing{},
		&domain.RateCard{},
		&domain.Section{},
		&domain.Table{},
		&domain.Column{},
		&domain.Row{},
		&domain.Cell{},
		&domain.Booking{},
	)
}
