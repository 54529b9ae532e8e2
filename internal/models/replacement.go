package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReplacementEvent records a maintenance item being serviced at a given
// odometer reading. NextDueKm is snapshotted at registration time from the
// interval then in effect; later edits to the configured interval do not
// change already-recorded events.
type ReplacementEvent struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"user_id" bson:"user_id"`
	Vehicle    VehicleType        `json:"vehicle_type" bson:"vehicle_type"`
	Date       string             `json:"date" bson:"date"` // yyyy-MM-dd
	ItemName   string             `json:"item" bson:"item"`
	OdometerKm float64            `json:"odometer_km" bson:"odometer_km"`
	IntervalKm float64            `json:"interval_km" bson:"interval_km"` // 0 = free-form
	NextDueKm  *float64           `json:"next_due_km" bson:"next_due_km"` // nil for free-form items
	Brand      string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Cost       float64            `json:"cost,omitempty" bson:"cost,omitempty"`
	Notes      string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// ComputeNextDue fills NextDueKm from the odometer reading and the interval
// captured on the event. Free-form events (interval <= 0) carry no due point.
func (e *ReplacementEvent) ComputeNextDue() {
	if e.IntervalKm > 0 {
		next := e.OdometerKm + e.IntervalKm
		e.NextDueKm = &next
		return
	}
	e.NextDueKm = nil
}
