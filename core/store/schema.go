package store

import (
	"fmt"

	"teamboard/core/database"

	"gorm.io/gorm"
)

// expectedColumns lists the columns the store reads and writes.
var expectedColumns = []string{"seq", "id", "name", "zone", "wins", "image_ref"}

// VerifySchema checks that the teams table exists with every column the store needs.
// It returns the missing columns, if any.
func VerifySchema(db *gorm.DB) ([]string, error) {
	missing, err := database.MissingColumns(db, TeamModel{}.TableName(), expectedColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return missing, nil
}
