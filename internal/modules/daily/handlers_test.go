package daily

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := testutil.NewMockDB(t)
	handler := NewHandler(NewService(db), "default-user")

	app := fiber.New()
	g := app.Group("/daily")
	g.Get("/today", handler.GetToday)
	g.Get("/all", handler.ListRecent)
	g.Post("/submit", handler.Submit)
	g.Post("/autosave", handler.Autosave)
	g.Get("/:date", handler.GetByDate)
	g.Put("/:date", handler.Update)
	g.Delete("/:date", handler.Delete)
	return app, mock
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (map[string]interface{}, int) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded, resp.StatusCode
}

func TestSubmitConflictReturnsBadRequest(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectExec(`INSERT INTO "daily_records" .* ON CONFLICT`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	body, status := postJSON(t, app, "/daily/submit", map[string]interface{}{
		"date": testDate,
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "already submitted")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReturnsFinalizedRecord(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectExec(`INSERT INTO "daily_records" .* ON CONFLICT`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "daily_records"`).
		WillReturnRows(recordRows(true))

	body, status := postJSON(t, app, "/daily/submit", map[string]interface{}{
		"date":   testDate,
		"stats":  map[string]interface{}{"completedTasks": 3, "totalTasks": 5},
		"goal":   "wrap up the report",
		"userId": testUser,
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["submitted"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAutosaveRejectsMalformedDate(t *testing.T) {
	app, _ := newTestApp(t)

	body, status := postJSON(t, app, "/daily/autosave", map[string]interface{}{
		"date": "yesterday",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}
