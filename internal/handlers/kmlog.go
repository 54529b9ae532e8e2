package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/models"
	"github.com/fretecalc/backend/internal/pricing"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KmLogHandler handles the daily distance log.
type KmLogHandler struct {
	records  db.DistanceLogCollection
	settings db.SettingsCollection
	items    db.ItemCollection
}

// NewKmLogHandler creates a new distance log handler
func NewKmLogHandler(records db.DistanceLogCollection, settings db.SettingsCollection, items db.ItemCollection) *KmLogHandler {
	return &KmLogHandler{records: records, settings: settings, items: items}
}

// RecordRequest carries a new distance log entry. When DistanceKm is zero
// and both odometer bounds are present, the distance is derived from them.
type RecordRequest struct {
	Date       string   `json:"date"`
	StartKm    *float64 `json:"start_km,omitempty"`
	EndKm      *float64 `json:"end_km,omitempty"`
	DistanceKm float64  `json:"distance_km"`
}

// ServeHTTP routes GET (list, optional year/month filter), POST (create)
// and DELETE for /api/kmlog.
func (h *KmLogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, scope)
	case http.MethodPost:
		h.create(w, r, scope)
	case http.MethodDelete:
		h.delete(w, r, scope)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *KmLogHandler) list(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	var records []models.DistanceRecord
	var err error
	if yearStr != "" && monthStr != "" {
		year, yErr := strconv.Atoi(yearStr)
		month, mErr := strconv.Atoi(monthStr)
		if yErr != nil || mErr != nil || month < 1 || month > 12 {
			http.Error(w, "Invalid year or month", http.StatusBadRequest)
			return
		}
		records, err = h.records.LoadRecordsForMonth(r.Context(), scope, year, time.Month(month))
	} else {
		records, err = h.records.LoadRecords(r.Context(), scope)
	}
	if err != nil {
		http.Error(w, "Failed to load records", http.StatusInternalServerError)
		return
	}

	totalKm := 0.0
	totalCost := 0.0
	for _, rec := range records {
		totalKm += rec.DistanceKm
		totalCost += rec.EstimatedCost
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":    records,
		"total_km":   totalKm,
		"total_cost": totalCost,
	})
}

func (h *KmLogHandler) create(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req RecordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	distance := req.DistanceKm
	if distance <= 0 && req.StartKm != nil && req.EndKm != nil {
		distance = *req.EndKm - *req.StartKm
	}
	if distance <= 0 {
		http.Error(w, "Distance must be greater than zero", http.StatusBadRequest)
		return
	}
	if req.Date == "" {
		http.Error(w, "Date is required", http.StatusBadRequest)
		return
	}

	cfg, err := h.settings.LoadConfig(r.Context(), scope)
	if err != nil {
		cfg = models.DefaultRateConfig(scope.Vehicle)
	}
	if items, err := h.items.LoadItems(r.Context(), scope); err == nil {
		cfg.MaintenancePerKm = models.MaintenancePerKm(items)
	}

	record := models.DistanceRecord{
		ID:            primitive.NewObjectID(),
		UserID:        scope.UserID,
		Vehicle:       scope.Vehicle,
		Date:          req.Date,
		StartKm:       req.StartKm,
		EndKm:         req.EndKm,
		DistanceKm:    distance,
		EstimatedCost: pricing.EstimateOperatingCost(distance, cfg),
	}

	if err := h.records.AppendRecord(r.Context(), record); err != nil {
		http.Error(w, "Failed to save record", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *KmLogHandler) delete(w http.ResponseWriter, r *http.Request, scope models.Scope) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Record ID is required", http.StatusBadRequest)
		return
	}

	if err := h.records.DeleteRecordByID(r.Context(), scope, id); err != nil {
		http.Error(w, "Failed to delete record", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
