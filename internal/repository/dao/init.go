package dao

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Festival{},
		&User{},
		&PlannedVisit{},
	)
}

// ValidID reports whether id can address a row. Every table keys on UUIDs.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func newID() string {
	return uuid.NewString()
}
