package models

// VehicleType identifies which vehicle profile a request operates on.
type VehicleType string

const (
	VehicleMoto  VehicleType = "moto"
	VehicleCarro VehicleType = "carro"
)

// IsValidVehicleType checks if a vehicle type is one of the supported profiles.
func IsValidVehicleType(v VehicleType) bool {
	return v == VehicleMoto || v == VehicleCarro
}

// Scope selects which rate settings, item set, replacement history and
// odometer value are in effect. All per-user data is partitioned by it.
type Scope struct {
	UserID  string      `json:"user_id" bson:"user_id"`
	Vehicle VehicleType `json:"vehicle_type" bson:"vehicle_type"`
}
