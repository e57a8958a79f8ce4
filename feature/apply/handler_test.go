package apply

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, client *mocks.Client, history *History) *fiber.App {
	t.Helper()
	feature := NewFeature(newService(t, client, history))
	assert.Equal(t, "apply", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func postApply(t *testing.T, app *fiber.App, body Body) (int, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/apply", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, payload
}

func TestHandleApply(t *testing.T) {
	t.Run("Incompatible", func(t *testing.T) {
		client := new(mocks.Client)
		mockValidationTarget(client, "business")
		app := setupTestApp(t, client, nil)

		code, data := postApply(t, app, Body{Configuration: softwareSource(), TargetProject: "TGT"})
		assert.Equal(t, fiber.StatusConflict, code)

		var payload struct {
			Error      string                      `json:"error"`
			Validation *reconcile.ValidationResult `json:"validation"`
		}
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, ErrIncompatible.Error(), payload.Error)
		require.NotNil(t, payload.Validation)
		assert.False(t, payload.Validation.Compatible)
	})

	t.Run("DryRun", func(t *testing.T) {
		client := new(mocks.Client)
		mockValidationTarget(client, "software")
		app := setupTestApp(t, client, nil)

		code, data := postApply(t, app, Body{
			Configuration: softwareSource(),
			TargetProject: "TGT",
			Options:       reconcile.ApplyOptions{DryRun: true},
		})
		assert.Equal(t, fiber.StatusOK, code)

		var result reconcile.ApplyResult
		require.NoError(t, json.Unmarshal(data, &result))
		assert.True(t, result.Success)
		assert.Equal(t, []string{ManualDryRun}, result.ManualSteps)
	})

	t.Run("MissingTarget", func(t *testing.T) {
		app := setupTestApp(t, new(mocks.Client), nil)
		code, _ := postApply(t, app, Body{Configuration: softwareSource()})
		assert.Equal(t, fiber.StatusBadRequest, code)
	})
}

func TestHandleHistory(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		app := setupTestApp(t, new(mocks.Client), nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/apply/history", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Enabled", func(t *testing.T) {
		history := setupHistory(t)
		_, err := history.Record(t.Context(), "SRC", "TGT", false, &reconcile.ApplyResult{Success: true})
		require.NoError(t, err)
		app := setupTestApp(t, new(mocks.Client), history)

		resp, err := app.Test(httptest.NewRequest("GET", "/apply/history?project=TGT&limit=5", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var payload struct {
			Runs []ApplyRun `json:"runs"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Len(t, payload.Runs, 1)
		assert.Equal(t, "SRC", payload.Runs[0].SourceProject)
	})
}
