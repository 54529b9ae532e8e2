package models

import "math"

// RateConfig holds the per-vehicle pricing configuration used by the
// freight calculator. MaintenancePerKm is a derived aggregate and is
// recomputed whenever the maintenance item set changes.
type RateConfig struct {
	PricePerKm        float64 `json:"price_per_km" bson:"price_per_km"`
	PricePerHour      float64 `json:"price_per_hour" bson:"price_per_hour"`
	MinimumCharge     float64 `json:"minimum_charge" bson:"minimum_charge"`
	FuelPrice         float64 `json:"fuel_price" bson:"fuel_price"`
	FuelEfficiency    float64 `json:"fuel_efficiency" bson:"fuel_efficiency"` // km per liter
	DepreciationPerKm float64 `json:"depreciation_per_km" bson:"depreciation_per_km"`
	MaintenancePerKm  float64 `json:"maintenance_per_km" bson:"maintenance_per_km"`
}

var rateConfigPresets = map[VehicleType]RateConfig{
	VehicleMoto: {
		PricePerKm:        0.50,
		PricePerHour:      50.00,
		MinimumCharge:     15.00,
		FuelPrice:         6.50,
		FuelEfficiency:    37,
		DepreciationPerKm: 0.10,
		MaintenancePerKm:  0.20,
	},
	VehicleCarro: {
		PricePerKm:        1.00,
		PricePerHour:      60.00,
		MinimumCharge:     20.00,
		FuelPrice:         6.10,
		FuelEfficiency:    12,
		DepreciationPerKm: 0.25,
		MaintenancePerKm:  0.35,
	},
}

// DefaultRateConfig returns the built-in preset for a vehicle type.
func DefaultRateConfig(vehicle VehicleType) RateConfig {
	if cfg, ok := rateConfigPresets[vehicle]; ok {
		return cfg
	}
	return rateConfigPresets[VehicleMoto]
}

// Sanitize replaces non-finite or negative fields with the preset values
// for the given vehicle type. Stored blobs edited by older clients may
// carry NaN or missing fields; the pricing engine never sees those.
func (c RateConfig) Sanitize(vehicle VehicleType) RateConfig {
	def := DefaultRateConfig(vehicle)
	fix := func(v, fallback float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fallback
		}
		return v
	}
	return RateConfig{
		PricePerKm:        fix(c.PricePerKm, def.PricePerKm),
		PricePerHour:      fix(c.PricePerHour, def.PricePerHour),
		MinimumCharge:     fix(c.MinimumCharge, def.MinimumCharge),
		FuelPrice:         fix(c.FuelPrice, def.FuelPrice),
		FuelEfficiency:    fix(c.FuelEfficiency, def.FuelEfficiency),
		DepreciationPerKm: fix(c.DepreciationPerKm, def.DepreciationPerKm),
		MaintenancePerKm:  fix(c.MaintenancePerKm, def.MaintenancePerKm),
	}
}
