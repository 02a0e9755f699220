package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/planloop/planloop-backend/internal/dto"
	"github.com/planloop/planloop-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckReportsDatabase(t *testing.T) {
	db, _ := testutil.NewMockDB(t)

	app := fiber.New()
	app.Get("/health", NewHealthHandler(db).Check)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))

	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.NotEmpty(t, health.Timestamp)
}
