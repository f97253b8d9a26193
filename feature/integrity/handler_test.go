package integrity_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"teamboard/core/database"
	"teamboard/core/liveview"
	"teamboard/core/loader"
	"teamboard/core/query"
	"teamboard/core/storage/mocks"
	"teamboard/core/store"
	"teamboard/feature/integrity"
	"teamboard/feature/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, src seed.Source) *fiber.App {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	st := store.NewGormStore(db, zap.NewNop())
	require.NoError(t, st.Migrate(ctx))
	_, err = st.Insert(ctx, store.Record{Name: "Japan", Zone: "Asia", Wins: 2})
	require.NoError(t, err)

	view := liveview.New(st, query.DefaultSpec(), zap.NewNop())
	require.NoError(t, view.Initialize(ctx))
	t.Cleanup(view.Close)

	feature := integrity.NewFeature(integrity.Options{
		DB:     db,
		Store:  st,
		View:   view,
		Spec:   query.DefaultSpec(),
		Source: src,
		Strict: true,
		Logger: zap.NewNop(),
	})
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	mgr := loader.NewManager(nil)
	mgr.Register(feature)
	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))
	return app
}

func bucketSource() seed.Source {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "teamboard").Return(true, nil)
	client.On("GetObject", mock.Anything, "teamboard", "teams.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`[{"teamName":"Japan","qualifyingZone":"Asia","wins":2,"imageName":"jp"}]`))), nil)
	return seed.BucketSource{Client: client, Bucket: "teamboard", Object: "teams.json"}
}

func TestHandleIntegrityCheck(t *testing.T) {
	app := setupApp(t, bucketSource())

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "ok", report["schema"]["status"])
	assert.Equal(t, "ok", report["seed"]["status"])
	assert.Equal(t, "ok", report["view"]["status"])
	assert.Equal(t, true, report["view"]["in_sync"])
}

func TestHandleChecks(t *testing.T) {
	app := setupApp(t, bucketSource())

	for _, path := range []string{"/integrity/schema", "/integrity/seed", "/integrity/view"} {
		t.Run(path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestHandleSeedCheck_NoSource(t *testing.T) {
	app := setupApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/seed", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
