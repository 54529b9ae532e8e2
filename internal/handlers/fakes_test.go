package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/fretecalc/backend/internal/middleware"
	"github.com/fretecalc/backend/internal/models"
)

// In-memory collection fakes keyed by scope. They mirror the fallback
// behavior of the Mongo-backed implementations: missing documents yield
// the vehicle presets, never an error.

type fakeSettings struct {
	configs map[models.Scope]models.RateConfig
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{configs: make(map[models.Scope]models.RateConfig)}
}

func (f *fakeSettings) LoadConfig(ctx context.Context, scope models.Scope) (models.RateConfig, error) {
	if cfg, ok := f.configs[scope]; ok {
		return cfg.Sanitize(scope.Vehicle), nil
	}
	return models.DefaultRateConfig(scope.Vehicle), nil
}

func (f *fakeSettings) SaveConfig(ctx context.Context, scope models.Scope, cfg models.RateConfig) error {
	f.configs[scope] = cfg
	return nil
}

type fakeItems struct {
	items map[models.Scope][]models.MaintenanceItem
}

func newFakeItems() *fakeItems {
	return &fakeItems{items: make(map[models.Scope][]models.MaintenanceItem)}
}

func (f *fakeItems) LoadItems(ctx context.Context, scope models.Scope) ([]models.MaintenanceItem, error) {
	if items, ok := f.items[scope]; ok {
		return items, nil
	}
	return models.DefaultMaintenanceItems(scope.Vehicle), nil
}

func (f *fakeItems) SaveItems(ctx context.Context, scope models.Scope, items []models.MaintenanceItem) error {
	f.items[scope] = items
	return nil
}

func (f *fakeItems) ResetItems(ctx context.Context, scope models.Scope) error {
	delete(f.items, scope)
	return nil
}

type fakeEvents struct {
	events map[models.Scope][]models.ReplacementEvent
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{events: make(map[models.Scope][]models.ReplacementEvent)}
}

func (f *fakeEvents) LoadEvents(ctx context.Context, scope models.Scope) ([]models.ReplacementEvent, error) {
	return f.events[scope], nil
}

func (f *fakeEvents) AppendEvent(ctx context.Context, event models.ReplacementEvent) error {
	scope := models.Scope{UserID: event.UserID, Vehicle: event.Vehicle}
	// Newest first, matching the stored sort order.
	f.events[scope] = append([]models.ReplacementEvent{event}, f.events[scope]...)
	return nil
}

func (f *fakeEvents) DeleteEventByID(ctx context.Context, scope models.Scope, id string) error {
	kept := f.events[scope][:0]
	for _, e := range f.events[scope] {
		if e.ID.Hex() != id {
			kept = append(kept, e)
		}
	}
	f.events[scope] = kept
	return nil
}

type fakeOdometer struct {
	readings map[models.Scope]float64
}

func newFakeOdometer() *fakeOdometer {
	return &fakeOdometer{readings: make(map[models.Scope]float64)}
}

func (f *fakeOdometer) LoadOdometer(ctx context.Context, scope models.Scope) (float64, error) {
	return f.readings[scope], nil
}

func (f *fakeOdometer) SaveOdometer(ctx context.Context, scope models.Scope, km float64) error {
	f.readings[scope] = km
	return nil
}

type fakeDistanceLog struct {
	records map[models.Scope][]models.DistanceRecord
}

func newFakeDistanceLog() *fakeDistanceLog {
	return &fakeDistanceLog{records: make(map[models.Scope][]models.DistanceRecord)}
}

func (f *fakeDistanceLog) LoadRecords(ctx context.Context, scope models.Scope) ([]models.DistanceRecord, error) {
	return f.records[scope], nil
}

func (f *fakeDistanceLog) LoadRecordsForMonth(ctx context.Context, scope models.Scope, year int, month time.Month) ([]models.DistanceRecord, error) {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var out []models.DistanceRecord
	for _, rec := range f.records[scope] {
		if strings.HasPrefix(rec.Date, prefix) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeDistanceLog) AppendRecord(ctx context.Context, record models.DistanceRecord) error {
	scope := models.Scope{UserID: record.UserID, Vehicle: record.Vehicle}
	f.records[scope] = append(f.records[scope], record)
	return nil
}

func (f *fakeDistanceLog) DeleteRecordByID(ctx context.Context, scope models.Scope, id string) error {
	kept := f.records[scope][:0]
	for _, rec := range f.records[scope] {
		if rec.ID.Hex() != id {
			kept = append(kept, rec)
		}
	}
	f.records[scope] = kept
	return nil
}

type fakeRoles struct {
	roles map[string][]models.Role
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{roles: make(map[string][]models.Role)}
}

func (f *fakeRoles) GetActiveRoles(ctx context.Context, userID string) ([]models.Role, error) {
	if roles, ok := f.roles[userID]; ok {
		return roles, nil
	}
	return []models.Role{models.RoleUser}, nil
}

// authenticated attaches claims to a request the way the auth middleware does.
func authenticated(req *http.Request, userID string) *http.Request {
	claims := &models.Claims{UserID: userID, Username: "courier"}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

func newRequest(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	return httptest.NewRequest(method, target, strings.NewReader(body))
}
