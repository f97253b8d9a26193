package checks

import (
	"fmt"

	"teamboard/core/store"

	"gorm.io/gorm"
)

// SchemaReport is the result of the schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies that the teams table has every column the store uses.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	missing, err := store.VerifySchema(db)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{
		Table:          store.TeamModel{}.TableName(),
		MissingColumns: missing,
		Status:         "ok",
	}
	if len(missing) > 0 {
		report.Status = "error"
	}
	return report, nil
}
