package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fretecalc/backend/internal/middleware"
	"github.com/fretecalc/backend/internal/models"
)

// scopeFromRequest builds the (user, vehicle) scope for a request. The
// vehicle type comes from the "vehicle" query parameter and defaults to
// moto, matching the app's primary audience.
func scopeFromRequest(r *http.Request) (models.Scope, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return models.Scope{}, false
	}
	return models.Scope{UserID: claims.UserID, Vehicle: vehicleFromRequest(r)}, true
}

func vehicleFromRequest(r *http.Request) models.VehicleType {
	vehicle := models.VehicleType(r.URL.Query().Get("vehicle"))
	if !models.IsValidVehicleType(vehicle) {
		return models.VehicleMoto
	}
	return vehicle
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
