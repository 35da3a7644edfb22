package db

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/richfield/wordClockApi/internal/auth"
	"github.com/richfield/wordClockApi/internal/config"
)

// Connect opens a GORM database connection using APP_DATABASE_URL (PostgreSQL URL).
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		return nil, errors.New("APP_DATABASE_URL is required (PostgreSQL URL)")
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil, errors.New("APP_DATABASE_URL must be a postgres:// or postgresql:// URL")
	}

	// PrepareStmt: true prevents the GORM postgres migrator from forcing simple protocol
	// for "SELECT * FROM table LIMIT 1", which would otherwise trigger "insufficient arguments".
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{PrepareStmt: true})
	if err != nil {
		return nil, err
	}

	// The unique index on username is what actually prevents duplicate
	// registrations; handler-level pre-checks only shape the error message.
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureBootstrapUser makes sure an initial account exists when bootstrap
// credentials are configured. If a user with that username already exists,
// it is left as-is.
func EnsureBootstrapUser(db *gorm.DB, cfg *config.Config, hasher *auth.Hasher) error {
	if cfg.BootstrapUser == "" || cfg.BootstrapPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&User{}).Where("username = ?", cfg.BootstrapUser).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, salt, err := hasher.Hash(cfg.BootstrapPassword)
	if err != nil {
		return err
	}

	user := &User{
		Username:     cfg.BootstrapUser,
		PasswordHash: hash,
		Salt:         salt,
		DateCreated:  time.Now(),
		Settings:     datatypes.JSON("{}"),
	}

	return db.Create(user).Error
}
