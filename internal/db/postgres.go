package db

import (
	"fmt"
	"strings"
	"time"

	"infinite-experiment/consortium/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

var DB *sqlx.DB

// InitSqlx returns the sqlx handle used for raw queries and health checks.
// Postgres gets its own lib/pq pool, retried while the database starts up;
// SQLite shares the GORM connection so both see the same file lock.
func InitSqlx(cfg config.Database, orm *gorm.DB) (*sqlx.DB, error) {
	if strings.ToLower(cfg.Driver) == config.DriverSQLite {
		sqlDB, err := orm.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		DB = sqlx.NewDb(sqlDB, "sqlite3")
		return DB, nil
	}

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", cfg.DSN())
		if err == nil {
			return DB, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres (sqlx): %w", err)
}
