package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a promotional slot managed by admins and shown in the app.
type Banner struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Position  string             `json:"position" bson:"position"` // "top", "bottom"
	ImageURL  string             `json:"image_url" bson:"image_url"`
	LinkURL   string             `json:"link_url,omitempty" bson:"link_url,omitempty"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
