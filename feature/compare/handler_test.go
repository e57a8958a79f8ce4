package compare

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"schema-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, exporter *mockExporter) *fiber.App {
	t.Helper()
	feature := NewFeature(NewService(exporter, zap.NewNop()))
	assert.Equal(t, "compare", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleCompare(t *testing.T) {
	left, right := leftAndRight()
	exporter := new(mockExporter)
	exporter.On("Export", mock.Anything, "LEFT", []string(nil)).Return(left, nil)
	exporter.On("Export", mock.Anything, "RIGHT", []string(nil)).Return(right, nil)
	exporter.On("Export", mock.Anything, "GONE", []string(nil)).Return(nil, errors.New("not found"))
	app := setupTestApp(t, exporter)

	t.Run("JSON", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/compare?left=LEFT&right=RIGHT", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var payload struct {
			Result  reconcile.ComparisonResult  `json:"result"`
			Summary reconcile.ComparisonSummary `json:"summary"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "LEFT", payload.Result.Left.Key)
		assert.Equal(t, 1, payload.Summary.Fields.New)
	})

	t.Run("Markdown", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/compare?left=LEFT&right=RIGHT&format=markdown", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "# LEFT vs RIGHT")
	})

	t.Run("MissingParameter", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/compare?left=LEFT", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/compare?left=LEFT&right=RIGHT&format=xml", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ExportFails", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/compare?left=LEFT&right=GONE", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	})
}
