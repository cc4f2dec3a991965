package config

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

var DB *gorm.DB

// ConnectDB opens the shared database handle. Postgres DSNs go through the
// postgres driver, everything else is treated as a SQLite path so local runs
// and tests need no database server.
func ConnectDB(dsn string) error {
	var (
		db  *gorm.DB
		err error
	)

	cfg := &gorm.Config{TranslateError: true}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		log.Println("Using SQLite:", dsn)
		db, err = gorm.Open(
			gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
			cfg,
		)
	}
	if err != nil {
		return err
	}

	DB = db
	return nil
}
