package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/models"
)

// SettingsHandler handles rate config reads and writes per scope.
type SettingsHandler struct {
	settings db.SettingsCollection
	items    db.ItemCollection
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings db.SettingsCollection, items db.ItemCollection) *SettingsHandler {
	return &SettingsHandler{settings: settings, items: items}
}

// ServeHTTP routes GET and PUT for /api/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	cfg, err := h.settings.LoadConfig(r.Context(), scope)
	if err != nil {
		// LoadConfig already fell back to the preset.
		cfg = cfg.Sanitize(scope.Vehicle)
	}

	if items, err := h.items.LoadItems(r.Context(), scope); err == nil {
		cfg.MaintenancePerKm = models.MaintenancePerKm(items)
	}

	writeJSON(w, http.StatusOK, cfg)
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var cfg models.RateConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	cfg = cfg.Sanitize(scope.Vehicle)

	// The maintenance rate is owned by the item set, not the client.
	if items, err := h.items.LoadItems(r.Context(), scope); err == nil {
		cfg.MaintenancePerKm = models.MaintenancePerKm(items)
	}

	if err := h.settings.SaveConfig(r.Context(), scope, cfg); err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}
