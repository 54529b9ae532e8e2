package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/middleware"
	"github.com/fretecalc/backend/internal/models"
	"github.com/fretecalc/backend/internal/pricing"
)

// FreightHandler handles freight quote requests
type FreightHandler struct {
	settings db.SettingsCollection
	items    db.ItemCollection
}

// NewFreightHandler creates a new freight handler
func NewFreightHandler(settings db.SettingsCollection, items db.ItemCollection) *FreightHandler {
	return &FreightHandler{settings: settings, items: items}
}

// QuoteRequest carries the trip inputs for a freight quote.
type QuoteRequest struct {
	DistanceKm float64            `json:"distance_km"`
	Hours      float64            `json:"hours"`
	Minutes    float64            `json:"minutes"`
	Vehicle    models.VehicleType `json:"vehicle_type"`
}

// Quote computes a freight quote. Authenticated callers get their stored
// configuration; anonymous callers get the vehicle preset. Distance and
// total time must be positive, everything past that is the engine's job.
func (h *FreightHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req QuoteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.DistanceKm <= 0 {
		http.Error(w, "Distance must be greater than zero", http.StatusBadRequest)
		return
	}
	totalMinutes := req.Hours*60 + req.Minutes
	if totalMinutes <= 0 {
		http.Error(w, "Trip time must be greater than zero", http.StatusBadRequest)
		return
	}

	vehicle := req.Vehicle
	if !models.IsValidVehicleType(vehicle) {
		vehicle = models.VehicleMoto
	}

	cfg, items := h.configForCaller(r, vehicle)
	result := pricing.ComputeFreight(req.DistanceKm, totalMinutes, cfg, items)
	writeJSON(w, http.StatusOK, result)
}

// configForCaller resolves the effective rate config and item set. The
// maintenance rate is always re-derived from the item set so the two can
// never drift apart.
func (h *FreightHandler) configForCaller(r *http.Request, vehicle models.VehicleType) (models.RateConfig, []models.MaintenanceItem) {
	cfg := models.DefaultRateConfig(vehicle)
	items := models.DefaultMaintenanceItems(vehicle)

	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		scope := models.Scope{UserID: claims.UserID, Vehicle: vehicle}
		if stored, err := h.settings.LoadConfig(r.Context(), scope); err == nil {
			cfg = stored
		}
		if storedItems, err := h.items.LoadItems(r.Context(), scope); err == nil {
			items = storedItems
		}
	}

	cfg.MaintenancePerKm = models.MaintenancePerKm(items)
	return cfg, items
}
