package db

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/blog-platform/internal/config"
)

type Database struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

func Connect(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	return &Database{Gorm: gormDB, SQL: sqlDB}, nil
}

func (d *Database) AutoMigrate(modelsToMigrate ...interface{}) error {
	return d.Gorm.AutoMigrate(modelsToMigrate...)
}

// EnsureVisibilityIndex backs the public-listing predicate with a composite index.
func (d *Database) EnsureVisibilityIndex() error {
	return d.Gorm.Exec("CREATE INDEX IF NOT EXISTS idx_posts_visibility ON posts (is_published, pub_date);").Error
}

func (d *Database) Close() error {
	if d.SQL != nil {
		return d.SQL.Close()
	}
	return nil
}

func (d *Database) Transaction(fc func(tx *gorm.DB) error) error {
	return d.Gorm.Transaction(fc)
}
