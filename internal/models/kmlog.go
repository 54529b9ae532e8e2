package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DistanceRecord is one entry of the daily distance log. EstimatedCost is
// the operating cost (fuel + maintenance + depreciation) over DistanceKm
// computed with the rate config active at registration time.
type DistanceRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"`
	Vehicle       VehicleType        `json:"vehicle_type" bson:"vehicle_type"`
	Date          string             `json:"date" bson:"date"` // yyyy-MM-dd
	StartKm       *float64           `json:"start_km,omitempty" bson:"start_km,omitempty"`
	EndKm         *float64           `json:"end_km,omitempty" bson:"end_km,omitempty"`
	DistanceKm    float64            `json:"distance_km" bson:"distance_km"`
	EstimatedCost float64            `json:"estimated_cost" bson:"estimated_cost"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// OdometerReading is the single current-km-per-scope state used as the
// reference point for maintenance status classification.
type OdometerReading struct {
	UserID    string      `json:"user_id" bson:"user_id"`
	Vehicle   VehicleType `json:"vehicle_type" bson:"vehicle_type"`
	Km        float64     `json:"km" bson:"km"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}
