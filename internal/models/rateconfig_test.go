package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRateConfig(t *testing.T) {
	moto := DefaultRateConfig(VehicleMoto)
	assert.Equal(t, 0.50, moto.PricePerKm)
	assert.Equal(t, 50.00, moto.PricePerHour)
	assert.Equal(t, 15.00, moto.MinimumCharge)
	assert.Equal(t, 37.0, moto.FuelEfficiency)

	carro := DefaultRateConfig(VehicleCarro)
	assert.NotEqual(t, moto, carro)

	// Unknown vehicle types fall back to the moto preset.
	assert.Equal(t, moto, DefaultRateConfig(VehicleType("truck")))
}

func TestRateConfig_Sanitize_ValidConfigUntouched(t *testing.T) {
	cfg := RateConfig{
		PricePerKm:        1.25,
		PricePerHour:      80,
		MinimumCharge:     10,
		FuelPrice:         5.99,
		FuelEfficiency:    30,
		DepreciationPerKm: 0.15,
		MaintenancePerKm:  0.22,
	}

	assert.Equal(t, cfg, cfg.Sanitize(VehicleMoto))
}

func TestRateConfig_Sanitize_ReplacesNaNAndInf(t *testing.T) {
	cfg := RateConfig{
		PricePerKm:     math.NaN(),
		PricePerHour:   math.Inf(1),
		FuelEfficiency: 30,
	}

	sanitized := cfg.Sanitize(VehicleMoto)
	def := DefaultRateConfig(VehicleMoto)

	assert.Equal(t, def.PricePerKm, sanitized.PricePerKm)
	assert.Equal(t, def.PricePerHour, sanitized.PricePerHour)
	assert.Equal(t, 30.0, sanitized.FuelEfficiency)
}

func TestRateConfig_Sanitize_ReplacesNegatives(t *testing.T) {
	cfg := DefaultRateConfig(VehicleCarro)
	cfg.FuelPrice = -3

	sanitized := cfg.Sanitize(VehicleCarro)
	assert.Equal(t, DefaultRateConfig(VehicleCarro).FuelPrice, sanitized.FuelPrice)
}
