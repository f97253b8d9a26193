package store

import (
	"context"
	"testing"

	"teamboard/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySchema(t *testing.T) {
	t.Run("Migrated", func(t *testing.T) {
		st := setupStore(t)

		missing, err := VerifySchema(st.db)
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("Legacy Table", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.WithContext(context.Background()).
			Exec("CREATE TABLE teams (seq INTEGER PRIMARY KEY, id TEXT, name TEXT, zone TEXT, wins INTEGER)").Error)

		missing, err := VerifySchema(db)
		require.NoError(t, err)
		assert.Equal(t, []string{"image_ref"}, missing)
	})
}
