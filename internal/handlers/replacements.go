package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/maintenance"
	"github.com/fretecalc/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReplacementsHandler handles replacement event registration, listing,
// deletion, the status report and the current odometer value.
type ReplacementsHandler struct {
	events   db.EventCollection
	items    db.ItemCollection
	odometer db.OdometerCollection
}

// NewReplacementsHandler creates a new replacements handler
func NewReplacementsHandler(events db.EventCollection, items db.ItemCollection, odometer db.OdometerCollection) *ReplacementsHandler {
	return &ReplacementsHandler{events: events, items: items, odometer: odometer}
}

// RegisterReplacementRequest carries the event fields supplied by the user.
// The id and the next-due odometer are assigned server-side.
type RegisterReplacementRequest struct {
	Date       string  `json:"date"`
	ItemName   string  `json:"item"`
	OdometerKm float64 `json:"odometer_km"`
	IntervalKm float64 `json:"interval_km"`
	Brand      string  `json:"brand,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// Events routes GET (list), POST (register) and DELETE for
// /api/maintenance/replacements.
func (h *ReplacementsHandler) Events(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, scope)
	case http.MethodPost:
		h.register(w, r, scope)
	case http.MethodDelete:
		h.delete(w, r, scope)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ReplacementsHandler) list(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	events, err := h.events.LoadEvents(r.Context(), scope)
	if err != nil {
		http.Error(w, "Failed to load replacements", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *ReplacementsHandler) register(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req RegisterReplacementRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.ItemName) == "" {
		http.Error(w, "Item name is required", http.StatusBadRequest)
		return
	}
	if req.OdometerKm <= 0 {
		http.Error(w, "Odometer must be greater than zero", http.StatusBadRequest)
		return
	}

	event := models.ReplacementEvent{
		ID:         primitive.NewObjectID(),
		UserID:     scope.UserID,
		Vehicle:    scope.Vehicle,
		Date:       req.Date,
		ItemName:   strings.TrimSpace(req.ItemName),
		OdometerKm: req.OdometerKm,
		IntervalKm: req.IntervalKm,
		Brand:      req.Brand,
		Cost:       req.Cost,
		Notes:      req.Notes,
	}
	// Snapshot the due point with the interval in effect right now. Later
	// interval edits must not move already-recorded events.
	event.ComputeNextDue()

	if err := h.events.AppendEvent(r.Context(), event); err != nil {
		http.Error(w, "Failed to save replacement", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *ReplacementsHandler) delete(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Event ID is required", http.StatusBadRequest)
		return
	}

	if err := h.events.DeleteEventByID(r.Context(), scope, id); err != nil {
		http.Error(w, "Failed to delete replacement", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status returns the classification report for every tracked item at the
// scope's current odometer reading.
func (h *ReplacementsHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scope, ok := scopeFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	items, err := h.items.LoadItems(r.Context(), scope)
	if err != nil {
		items = models.DefaultMaintenanceItems(scope.Vehicle)
	}
	events, err := h.events.LoadEvents(r.Context(), scope)
	if err != nil {
		http.Error(w, "Failed to load replacements", http.StatusInternalServerError)
		return
	}
	currentKm, err := h.odometer.LoadOdometer(r.Context(), scope)
	if err != nil {
		currentKm = 0
	}

	report := maintenance.ClassifyAll(items, events, currentKm)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current_km": currentKm,
		"report":     report,
	})
}

// Odometer routes GET and PUT for the scope's current odometer value.
func (h *ReplacementsHandler) Odometer(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		km, err := h.odometer.LoadOdometer(r.Context(), scope)
		if err != nil {
			km = 0
		}
		writeJSON(w, http.StatusOK, map[string]float64{"km": km})
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		var req struct {
			Km float64 `json:"km"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Km < 0 {
			http.Error(w, "Odometer cannot be negative", http.StatusBadRequest)
			return
		}

		if err := h.odometer.SaveOdometer(r.Context(), scope, req.Km); err != nil {
			http.Error(w, "Failed to save odometer", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"km": req.Km})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
