package database

import (
	"fmt"

	"github.com/inkwell-blog/core/internal/config"
	"github.com/inkwell-blog/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and runs auto-migration. The returned
// handle is passed explicitly to every service; there is no package-level
// instance.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.DSN,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// Migrate runs GORM auto-migration for all models. The explicit junction
// model backs the many2many relations so its composite key is the table's
// primary key.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.PostModel{}, "Categories", &models.PostCategory{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.CategoryModel{}, "Posts", &models.PostCategory{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.CategoryModel{},
		&models.PostModel{},
	); err != nil {
		return err
	}

	// MySQL's default utf8mb4 collation compares case-insensitively, but
	// usernames are case-sensitive identifiers: "Alice" and "alice" are
	// distinct accounts. A binary collation makes both the unique index
	// and the lookup comparisons exact. Other dialects compare bytewise
	// already.
	if db.Dialector.Name() == "mysql" {
		return db.Exec(
			"ALTER TABLE users MODIFY username VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		).Error
	}
	return nil
}
