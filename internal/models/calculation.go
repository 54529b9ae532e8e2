package models

// MaintenanceBreakdown is the share of one maintenance item in a trip's cost.
type MaintenanceBreakdown struct {
	Name     string  `json:"name"`
	TripCost float64 `json:"trip_cost"`
}

// CalculationResult is the full output of a freight computation. It is a
// view built fresh on every call and never persisted.
type CalculationResult struct {
	Revenue          float64                `json:"revenue"`
	MinimumApplied   bool                   `json:"minimum_applied"`
	FuelCost         float64                `json:"fuel_cost"`
	FuelLiters       float64                `json:"fuel_liters"`
	MaintenanceCost  float64                `json:"maintenance_cost"`
	DepreciationCost float64                `json:"depreciation_cost"`
	TotalCost        float64                `json:"total_cost"`
	NetProfit        float64                `json:"net_profit"`
	DistanceKm       float64                `json:"distance_km"`
	DurationMinutes  float64                `json:"duration_minutes"`
	Breakdown        []MaintenanceBreakdown `json:"maintenance_breakdown"`
}

// ItemStatusCode classifies a serviceable item against the current odometer.
type ItemStatusCode string

const (
	StatusOverdue     ItemStatusCode = "overdue"
	StatusDueSoon     ItemStatusCode = "due_soon"
	StatusOK          ItemStatusCode = "ok"
	StatusUnscheduled ItemStatusCode = "unscheduled"
)

// ItemStatus is the derived state of one maintenance item. It is recomputed
// on every status query from the replacement history and current odometer.
type ItemStatus struct {
	ItemName        string            `json:"item"`
	Status          ItemStatusCode    `json:"status"`
	LastReplacement *ReplacementEvent `json:"last_replacement,omitempty"`
	NextDueKm       *float64          `json:"next_due_km"`
	RemainingKm     *float64          `json:"remaining_km,omitempty"`
}

// StatusReport aggregates the statuses of every tracked item for a scope,
// with the four filtered views clients render as sections.
type StatusReport struct {
	All         []ItemStatus `json:"all"`
	Overdue     []ItemStatus `json:"overdue"`
	DueSoon     []ItemStatus `json:"due_soon"`
	OK          []ItemStatus `json:"ok"`
	Unscheduled []ItemStatus `json:"unscheduled"`
}
