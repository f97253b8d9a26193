package teams_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"teamboard/core/liveview"
	"teamboard/core/loader"
	"teamboard/core/query"
	"teamboard/core/store"
	"teamboard/feature/teams"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *fixture) {
	t.Helper()
	f := setup(t, 0)

	mgr := loader.NewManager(zap.NewNop())
	mgr.Register(teams.NewFeature(f.service))

	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))
	return app, f
}

func decode(t *testing.T, body io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(v))
}

func TestHandler_Sections(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/teams/sections", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Sections []liveview.SectionInfo `json:"sections"`
	}
	decode(t, resp.Body, &body)
	require.Len(t, body.Sections, 2)
	assert.Equal(t, "Asia", body.Sections[0].Label)
	assert.Equal(t, 2, body.Sections[0].Count)
}

func TestHandler_ObjectAt(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"Found", "/teams/sections/1/rows/0", 200},
		{"Section out of range", "/teams/sections/9/rows/0", 404},
		{"Row out of range", "/teams/sections/0/rows/2", 404},
		{"Not a number", "/teams/sections/x/rows/0", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/teams/sections/1/rows/0", nil))
	require.NoError(t, err)
	var rec store.Record
	decode(t, resp.Body, &rec)
	assert.Equal(t, "Brazil", rec.Name)
}

func TestHandler_AddTeam(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("POST", "/teams", strings.NewReader(`{"name":"Germany","zone":"Europe","wins":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var rec store.Record
	decode(t, resp.Body, &rec)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, teams.DefaultImage, rec.Image())

	req = httptest.NewRequest("POST", "/teams", strings.NewReader(`{"name":"Spain","zone":"Europe","wins":-3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	req = httptest.NewRequest("POST", "/teams", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandler_IncrementWins(t *testing.T) {
	app, f := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/teams/"+f.ids["Brazil"]+"/wins", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var rec store.Record
	decode(t, resp.Body, &rec)
	assert.Equal(t, 6, rec.Wins)

	resp, err = app.Test(httptest.NewRequest("POST", "/teams/unknown/wins", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/teams/sections/0/rows/1/wins", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	decode(t, resp.Body, &rec)
	assert.Equal(t, "Japan", rec.Name)
	assert.Equal(t, 3, rec.Wins)

	resp, err = app.Test(httptest.NewRequest("GET", "/teams/operations", nil))
	require.NoError(t, err)
	var ops struct {
		Batches []teams.Batch `json:"batches"`
	}
	decode(t, resp.Body, &ops)
	assert.Len(t, ops.Batches, 2)
}

func TestHandler_Snapshot(t *testing.T) {
	app, f := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/teams/snapshot", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	want, err := f.view.Snapshot()
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	expected, err := json.Marshal(want)
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), string(body))
}

func TestHandler_ClosedView(t *testing.T) {
	app, f := setupApp(t)
	f.view.Close()

	resp, err := app.Test(httptest.NewRequest("GET", "/teams/sections", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandler_NotLoaded(t *testing.T) {
	f := setup(t, 0)
	view := liveview.New(f.store, query.DefaultSpec(), zap.NewNop())
	svc := teams.NewService(f.store, view, zap.NewNop(), 0)
	defer svc.Close()

	app := fiber.New()
	teams.NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/teams/snapshot", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}
