package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"luvihelper/services"
)

// StatusHandler exposes a small read-only HTTP surface for operating the bot.
type StatusHandler struct {
	settingsService services.SettingsService
	scheduler       services.ReminderScheduler
	dedupCache      services.DedupCache
}

func NewStatusHandler(
	settingsService services.SettingsService,
	scheduler services.ReminderScheduler,
	dedupCache services.DedupCache,
) *StatusHandler {
	return &StatusHandler{
		settingsService: settingsService,
		scheduler:       scheduler,
		dedupCache:      dedupCache,
	}
}

type StatusResponse struct {
	PendingReminders int `json:"pending_reminders"`
	DedupEntries     int `json:"dedup_entries"`
	ConfiguredGuilds int `json:"configured_guilds"`
}

func (h *StatusHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.HandleFunc("/api/status", h.HandleStatus).Methods("GET")
}

func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		log.Printf("❌ Failed to write health check response: %v", err)
	}
}

func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Status request received from %s", r.RemoteAddr)

	response := StatusResponse{
		PendingReminders: h.scheduler.PendingCount(),
		DedupEntries:     h.dedupCache.Size(),
		ConfiguredGuilds: h.settingsService.GuildCount(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *StatusHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}
