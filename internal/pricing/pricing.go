// Package pricing implements the freight pricing and cost-amortization
// arithmetic. All functions are pure: no I/O, no stored state.
package pricing

import "github.com/fretecalc/backend/internal/models"

// ComputeFreight produces the full charge/cost/profit breakdown for a trip.
// Inputs are assumed pre-validated by the caller: distanceKm > 0 and
// durationMinutes > 0. Zero or negative values are a caller bug, surfaced
// upstream as user-input errors, never here.
func ComputeFreight(distanceKm, durationMinutes float64, cfg models.RateConfig, items []models.MaintenanceItem) models.CalculationResult {
	pricePerMinute := cfg.PricePerHour / 60
	revenue := distanceKm*cfg.PricePerKm + durationMinutes*pricePerMinute

	minimumApplied := false
	if revenue < cfg.MinimumCharge {
		revenue = cfg.MinimumCharge
		minimumApplied = true
	}

	// Efficiency of 0 would divide by zero on a misconfigured profile.
	efficiency := cfg.FuelEfficiency
	if efficiency <= 0 {
		efficiency = 1
	}
	fuelLiters := distanceKm / efficiency
	fuelCost := fuelLiters * cfg.FuelPrice

	maintenanceCost := distanceKm * cfg.MaintenancePerKm
	depreciationCost := distanceKm * cfg.DepreciationPerKm
	totalCost := fuelCost + maintenanceCost + depreciationCost

	breakdown := make([]models.MaintenanceBreakdown, 0, len(items))
	for _, item := range items {
		breakdown = append(breakdown, models.MaintenanceBreakdown{
			Name:     item.Name,
			TripCost: item.CostPerKm() * distanceKm,
		})
	}

	return models.CalculationResult{
		Revenue:          revenue,
		MinimumApplied:   minimumApplied,
		FuelCost:         fuelCost,
		FuelLiters:       fuelLiters,
		MaintenanceCost:  maintenanceCost,
		DepreciationCost: depreciationCost,
		TotalCost:        totalCost,
		NetProfit:        revenue - totalCost,
		DistanceKm:       distanceKm,
		DurationMinutes:  durationMinutes,
		Breakdown:        breakdown,
	}
}

// EstimateOperatingCost returns the cost side of the freight formula
// (fuel + maintenance + depreciation) for a driven distance, without the
// revenue and floor logic. The distance log uses it to price each day.
func EstimateOperatingCost(distanceKm float64, cfg models.RateConfig) float64 {
	efficiency := cfg.FuelEfficiency
	if efficiency <= 0 {
		efficiency = 1
	}
	fuelCost := (distanceKm / efficiency) * cfg.FuelPrice
	maintenanceCost := distanceKm * cfg.MaintenancePerKm
	depreciationCost := distanceKm * cfg.DepreciationPerKm
	return fuelCost + maintenanceCost + depreciationCost
}
