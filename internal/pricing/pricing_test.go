package pricing

import (
	"testing"

	"github.com/fretecalc/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func testConfig() models.RateConfig {
	return models.RateConfig{
		PricePerKm:        0.50,
		PricePerHour:      50.00,
		MinimumCharge:     15.00,
		FuelPrice:         6.50,
		FuelEfficiency:    37,
		DepreciationPerKm: 0.10,
		MaintenancePerKm:  0.20,
	}
}

func TestComputeFreight_RevenueAboveMinimum(t *testing.T) {
	// 10 km at 0.50 plus 60 min at 50/h = 5 + 50 = 55.
	result := ComputeFreight(10, 60, testConfig(), nil)

	assert.InDelta(t, 55.0, result.Revenue, 1e-9)
	assert.False(t, result.MinimumApplied)
}

func TestComputeFreight_MinimumFloor(t *testing.T) {
	// 1 km and 1 min is well under the 15.00 floor.
	result := ComputeFreight(1, 1, testConfig(), nil)

	assert.Equal(t, 15.00, result.Revenue)
	assert.True(t, result.MinimumApplied)
}

func TestComputeFreight_FloorIsHardNotBlended(t *testing.T) {
	cfg := testConfig()

	// Just above the floor: revenue must equal the raw formula exactly.
	result := ComputeFreight(10, 12, cfg, nil)
	raw := 10*cfg.PricePerKm + 12*(cfg.PricePerHour/60)
	assert.InDelta(t, raw, result.Revenue, 1e-9)
	assert.False(t, result.MinimumApplied)
}

func TestComputeFreight_CostSumIdentity(t *testing.T) {
	result := ComputeFreight(23.7, 95, testConfig(), nil)

	assert.Equal(t, result.FuelCost+result.MaintenanceCost+result.DepreciationCost, result.TotalCost)
	assert.InDelta(t, result.Revenue-result.TotalCost, result.NetProfit, 1e-9)
}

func TestComputeFreight_FuelCosts(t *testing.T) {
	cfg := testConfig()
	result := ComputeFreight(74, 30, cfg, nil)

	assert.InDelta(t, 2.0, result.FuelLiters, 1e-9) // 74 km / 37 km/L
	assert.InDelta(t, 13.0, result.FuelCost, 1e-9)  // 2 L * 6.50
}

func TestComputeFreight_ZeroFuelEfficiencyGuard(t *testing.T) {
	cfg := testConfig()
	cfg.FuelEfficiency = 0

	result := ComputeFreight(10, 30, cfg, nil)

	// Guarded to 1 km/L instead of dividing by zero.
	assert.InDelta(t, 10.0, result.FuelLiters, 1e-9)
	assert.InDelta(t, 65.0, result.FuelCost, 1e-9)
}

func TestComputeFreight_NetProfitMayBeNegative(t *testing.T) {
	cfg := testConfig()
	cfg.FuelPrice = 100 // absurd fuel price to force a loss

	result := ComputeFreight(50, 60, cfg, nil)
	assert.Less(t, result.NetProfit, 0.0)
}

func TestComputeFreight_PerItemBreakdownSumsToMaintenanceCost(t *testing.T) {
	items := []models.MaintenanceItem{
		{Name: "Óleo do motor", UnitCost: 115, IntervalKm: 4000},
		{Name: "Filtro de óleo", UnitCost: 40, IntervalKm: 4000},
		{Name: "Corrente (avulso)", UnitCost: 150, IntervalKm: 0}, // free-form, contributes 0
	}
	cfg := testConfig()
	cfg.MaintenancePerKm = models.MaintenancePerKm(items)

	result := ComputeFreight(120, 60, cfg, items)

	assert.Len(t, result.Breakdown, 3)
	sum := 0.0
	for _, b := range result.Breakdown {
		sum += b.TripCost
	}
	assert.InDelta(t, result.MaintenanceCost, sum, 1e-9)
	assert.Equal(t, 0.0, result.Breakdown[2].TripCost)
}

func TestComputeFreight_CarriesInputsThrough(t *testing.T) {
	result := ComputeFreight(8.5, 42, testConfig(), nil)

	assert.Equal(t, 8.5, result.DistanceKm)
	assert.Equal(t, 42.0, result.DurationMinutes)
}

func TestEstimateOperatingCost_MatchesFreightCostSide(t *testing.T) {
	cfg := testConfig()
	result := ComputeFreight(33, 50, cfg, nil)

	assert.InDelta(t, result.TotalCost, EstimateOperatingCost(33, cfg), 1e-9)
}

func TestEstimateOperatingCost_ZeroEfficiencyGuard(t *testing.T) {
	cfg := testConfig()
	cfg.FuelEfficiency = 0

	cost := EstimateOperatingCost(10, cfg)
	expected := 10*cfg.FuelPrice + 10*cfg.MaintenancePerKm + 10*cfg.DepreciationPerKm
	assert.InDelta(t, expected, cost, 1e-9)
}
