package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/models"
)

// ItemsHandler handles the per-scope maintenance item set.
type ItemsHandler struct {
	items db.ItemCollection
}

// NewItemsHandler creates a new items handler
func NewItemsHandler(items db.ItemCollection) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// ServeHTTP routes GET, PUT and DELETE for /api/maintenance/items.
// DELETE drops the scope's override, reverting the set to the preset.
func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, scope)
	case http.MethodPut:
		h.update(w, r, scope)
	case http.MethodDelete:
		h.reset(w, r, scope)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ItemsHandler) get(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	items, err := h.items.LoadItems(r.Context(), scope)
	if err != nil {
		// LoadItems already fell back to the preset.
		items = models.DefaultMaintenanceItems(scope.Vehicle)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":              items,
		"maintenance_per_km": models.MaintenancePerKm(items),
	})
}

func (h *ItemsHandler) update(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var items []models.MaintenanceItem
	if err := json.Unmarshal(body, &items); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	for _, item := range items {
		if item.Name == "" {
			http.Error(w, "Item name is required", http.StatusBadRequest)
			return
		}
	}

	if err := h.items.SaveItems(r.Context(), scope, items); err != nil {
		http.Error(w, "Failed to save items", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":              items,
		"maintenance_per_km": models.MaintenancePerKm(items),
	})
}

func (h *ItemsHandler) reset(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	if err := h.items.ResetItems(r.Context(), scope); err != nil {
		http.Error(w, "Failed to reset items", http.StatusInternalServerError)
		return
	}

	items := models.DefaultMaintenanceItems(scope.Vehicle)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":              items,
		"maintenance_per_km": models.MaintenancePerKm(items),
	})
}
