package database

import (
	"fmt"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/order"
)

// AutoMigrate applies GORM schema migrations for every table the service owns.
func AutoMigrate() error {
	return DB.AutoMigrate(
		&company.Company{},
		&company.User{},
		&inquiry.Sequence{},
		&inquiry.Inquiry{},
		&inquiry.Quote{},
		&inquiry.InquiryMessage{},
		&message.Message{},
		&message.Attachment{},
		&order.Order{},
	)
}

// RunFullMigration applies raw SQL migrations followed by GORM AutoMigrate.
func RunFullMigration(migrationsDir string) error {
	if err := ApplyRawMigrations(migrationsDir); err != nil {
		return err
	}
	if err := AutoMigrate(); err != nil {
		return fmt.Errorf("gorm auto-migration failed: %w", err)
	}
	return nil
}

// TableExists reports whether the named table is present.
func TableExists(name string) (bool, error) {
	if DB == nil {
		return false, fmt.Errorf("database not connected")
	}
	return DB.Migrator().HasTable(name), nil
}

// TableCount returns the row count of the named table.
func TableCount(name string) (int64, error) {
	var count int64
	err := DB.Table(name).Count(&count).Error
	return count, err
}
