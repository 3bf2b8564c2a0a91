package model

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the table backing the named model
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Note":
		return db.AutoMigrate(&Note{})
	}
	return fmt.Errorf("model %s not found", key)
}

// AutoMigrateAll migrates every model the service owns
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"Note"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
