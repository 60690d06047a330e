package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const defaultSQLiteDSN = "renthub.db"

// Connect opens the platform database. A postgres:// or postgresql:// DSN
// selects the pgx-backed postgres driver; anything else is treated as a
// sqlite path. The sqlite driver name is pinned to modernc's cgo-free
// build so ":memory:" works in tests without a C toolchain.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = defaultSQLiteDSN
	}

	cfg := &gorm.Config{}
	if dsn == ":memory:" {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("database: connecting to postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Printf("database: opening sqlite dsn=%s", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}
