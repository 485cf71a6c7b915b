package infra

import (
	"fmt"

	"gamehouse/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates all tables and applies schema patches.
// Also used by the e2e test suite against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Operator{},
		&model.Customer{},
		&model.Category{},
		&model.CatalogService{},
		&model.Session{},
		&model.SessionItem{},
		&model.LoginSession{},
		&model.PasswordResetToken{},
		&model.Setting{},
		&model.ActivityLogEntry{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM tags cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Phone must be unique only among active customers; deactivated
		// customers keep their number without blocking re-registration.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_customers_phone_active') THEN
		    CREATE UNIQUE INDEX uni_customers_phone_active
		        ON customers (phone)
		        WHERE active = true;
		  END IF;
		END $$`,
		// One open billing session per customer.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_sessions_customer_open') THEN
		    CREATE UNIQUE INDEX uni_sessions_customer_open
		        ON sessions (customer_id)
		        WHERE status <> 'completed';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
