package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fretecalc/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSettings_GetDefaults(t *testing.T) {
	h := NewSettingsHandler(newFakeSettings(), newFakeItems())

	req := authenticated(newRequest(http.MethodGet, "/api/settings", ""), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var cfg models.RateConfig
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 0.50, cfg.PricePerKm)
	assert.Equal(t, 15.00, cfg.MinimumCharge)
	// The maintenance rate comes from the default item set, not the preset
	// constant, so it is the sum of the per-item rates.
	assert.InDelta(t, models.MaintenancePerKm(models.DefaultMaintenanceItems(models.VehicleMoto)), cfg.MaintenancePerKm, 1e-9)
}

func TestSettings_PutRoundTrip(t *testing.T) {
	settings := newFakeSettings()
	h := NewSettingsHandler(settings, newFakeItems())

	body := `{"price_per_km":1.25,"price_per_hour":80,"minimum_charge":20,"fuel_price":5.99,"fuel_efficiency":30,"depreciation_per_km":0.15}`
	req := authenticated(newRequest(http.MethodPut, "/api/settings", body), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var cfg models.RateConfig
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 1.25, cfg.PricePerKm)

	scope := models.Scope{UserID: "u1", Vehicle: models.VehicleMoto}
	stored, _ := settings.LoadConfig(nil, scope)
	assert.Equal(t, 1.25, stored.PricePerKm)
}

func TestSettings_PutSanitizesBadValues(t *testing.T) {
	h := NewSettingsHandler(newFakeSettings(), newFakeItems())

	body := `{"price_per_km":-5,"price_per_hour":80,"minimum_charge":20,"fuel_price":5.99,"fuel_efficiency":30,"depreciation_per_km":0.15}`
	req := authenticated(newRequest(http.MethodPut, "/api/settings", body), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var cfg models.RateConfig
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, models.DefaultRateConfig(models.VehicleMoto).PricePerKm, cfg.PricePerKm)
}

func TestSettings_ClientCannotSetMaintenanceRate(t *testing.T) {
	h := NewSettingsHandler(newFakeSettings(), newFakeItems())

	body := `{"price_per_km":1,"price_per_hour":60,"minimum_charge":15,"fuel_price":6,"fuel_efficiency":35,"depreciation_per_km":0.1,"maintenance_per_km":99}`
	req := authenticated(newRequest(http.MethodPut, "/api/settings", body), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var cfg models.RateConfig
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.InDelta(t, models.MaintenancePerKm(models.DefaultMaintenanceItems(models.VehicleMoto)), cfg.MaintenancePerKm, 1e-9)
}

func TestSettings_ScopedByVehicle(t *testing.T) {
	settings := newFakeSettings()
	h := NewSettingsHandler(settings, newFakeItems())

	body := `{"price_per_km":2,"price_per_hour":90,"minimum_charge":25,"fuel_price":6.1,"fuel_efficiency":12,"depreciation_per_km":0.25}`
	req := authenticated(newRequest(http.MethodPut, "/api/settings?vehicle=carro", body), "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The moto scope still serves the preset.
	req = authenticated(newRequest(http.MethodGet, "/api/settings", ""), "u1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var cfg models.RateConfig
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 0.50, cfg.PricePerKm)
}

func TestSettings_RequiresAuth(t *testing.T) {
	h := NewSettingsHandler(newFakeSettings(), newFakeItems())

	req := newRequest(http.MethodGet, "/api/settings", "")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
