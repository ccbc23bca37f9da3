package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luvihelper/services"
)

func TestStatusHandler(t *testing.T) {
	newRouter := func(settings *services.MockSettingsService, scheduler *services.MockReminderScheduler, dedupCache *services.MockDedupCache) *mux.Router {
		router := mux.NewRouter()
		NewStatusHandler(settings, scheduler, dedupCache).SetupEndpoints(router)
		return router
	}

	t.Run("HealthReturnsOK", func(t *testing.T) {
		router := newRouter(new(services.MockSettingsService), new(services.MockReminderScheduler), new(services.MockDedupCache))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
	})

	t.Run("StatusReportsCounters", func(t *testing.T) {
		settings := new(services.MockSettingsService)
		scheduler := new(services.MockReminderScheduler)
		dedupCache := new(services.MockDedupCache)
		settings.On("GuildCount").Return(3)
		scheduler.On("PendingCount").Return(7)
		dedupCache.On("Size").Return(42)

		recorder := httptest.NewRecorder()
		newRouter(settings, scheduler, dedupCache).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/status", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var response StatusResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, 7, response.PendingReminders)
		assert.Equal(t, 42, response.DedupEntries)
		assert.Equal(t, 3, response.ConfiguredGuilds)
	})

	t.Run("StatusRejectsPost", func(t *testing.T) {
		router := newRouter(new(services.MockSettingsService), new(services.MockReminderScheduler), new(services.MockDedupCache))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/status", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}
