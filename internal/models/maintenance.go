package models

// MaintenanceItem is a serviceable part with its unit cost and replacement
// interval in kilometers. IntervalKm <= 0 marks a free-form item: it is
// tracked for history only and contributes nothing to the per-km rate.
type MaintenanceItem struct {
	Name       string  `json:"name" bson:"name"`
	UnitCost   float64 `json:"unit_cost" bson:"unit_cost"`
	IntervalKm float64 `json:"interval_km" bson:"interval_km"`
}

// CostPerKm returns the amortized cost of the item per kilometer driven.
func (i MaintenanceItem) CostPerKm() float64 {
	if i.IntervalKm <= 0 {
		return 0
	}
	return i.UnitCost / i.IntervalKm
}

// MaintenancePerKm sums the amortized per-km cost over an item set. This is
// the aggregate the pricing engine consumes as RateConfig.MaintenancePerKm.
func MaintenancePerKm(items []MaintenanceItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.CostPerKm()
	}
	return total
}

var maintenanceItemPresets = map[VehicleType][]MaintenanceItem{
	VehicleMoto: {
		{Name: "Óleo do motor sintético (1 L)", UnitCost: 115.00, IntervalKm: 4000},
		{Name: "Filtro de óleo", UnitCost: 40.00, IntervalKm: 4000},
		{Name: "Filtro de ar", UnitCost: 80.00, IntervalKm: 15000},
		{Name: "Filtro de combustível", UnitCost: 70.00, IntervalKm: 20000},
		{Name: "Vela de ignição", UnitCost: 60.00, IntervalKm: 15000},
		{Name: "Kit relação completo", UnitCost: 280.00, IntervalKm: 20000},
		{Name: "Pneu dianteiro 80/100-18", UnitCost: 260.00, IntervalKm: 18000},
		{Name: "Pneu traseiro 100/90-18", UnitCost: 320.00, IntervalKm: 18000},
		{Name: "Pastilha de freio dianteira", UnitCost: 120.00, IntervalKm: 15000},
		{Name: "Lona de freio traseira", UnitCost: 140.00, IntervalKm: 20000},
		{Name: "Fluido de freio dianteiro", UnitCost: 80.00, IntervalKm: 24000},
		{Name: "Buchas de balança + mão de obra", UnitCost: 200.00, IntervalKm: 30000},
		{Name: "Rolamentos de roda (par)", UnitCost: 220.00, IntervalKm: 40000},
		{Name: "Revisão preventiva completa", UnitCost: 400.00, IntervalKm: 5000},
	},
	VehicleCarro: {
		{Name: "Óleo motor sintético (4 L)", UnitCost: 280.00, IntervalKm: 10000},
		{Name: "Filtro de óleo", UnitCost: 50.00, IntervalKm: 10000},
		{Name: "Filtro de ar", UnitCost: 90.00, IntervalKm: 20000},
		{Name: "Filtro de combustível", UnitCost: 110.00, IntervalKm: 30000},
		{Name: "Velas de ignição (4)", UnitCost: 180.00, IntervalKm: 30000},
		{Name: "Correia dentada", UnitCost: 450.00, IntervalKm: 60000},
		{Name: "Pneu dianteiro (par)", UnitCost: 800.00, IntervalKm: 35000},
		{Name: "Pneu traseiro (par)", UnitCost: 800.00, IntervalKm: 35000},
		{Name: "Pastilha de freio dianteira", UnitCost: 180.00, IntervalKm: 25000},
		{Name: "Pastilha de freio traseira", UnitCost: 160.00, IntervalKm: 30000},
		{Name: "Fluido de freio", UnitCost: 120.00, IntervalKm: 30000},
		{Name: "Amortecedores dianteiros (par)", UnitCost: 700.00, IntervalKm: 50000},
		{Name: "Alinhamento e balanceamento", UnitCost: 150.00, IntervalKm: 10000},
		{Name: "Revisão preventiva completa", UnitCost: 600.00, IntervalKm: 10000},
	},
}

// DefaultMaintenanceItems returns a copy of the built-in item preset for a
// vehicle type. Callers may mutate the returned slice freely.
func DefaultMaintenanceItems(vehicle VehicleType) []MaintenanceItem {
	preset, ok := maintenanceItemPresets[vehicle]
	if !ok {
		preset = maintenanceItemPresets[VehicleMoto]
	}
	items := make([]MaintenanceItem, len(preset))
	copy(items, preset)
	return items
}
