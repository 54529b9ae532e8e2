package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fretecalc/backend/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ItemCollection defines the interface for maintenance item set storage.
// Each scope holds at most one override document; without one the built-in
// preset applies, and Reset reverts to it by deleting the override.
type ItemCollection interface {
	LoadItems(ctx context.Context, scope models.Scope) ([]models.MaintenanceItem, error)
	SaveItems(ctx context.Context, scope models.Scope, items []models.MaintenanceItem) error
	ResetItems(ctx context.Context, scope models.Scope) error
}

type itemSetDoc struct {
	UserID    string                   `bson:"user_id"`
	Vehicle   models.VehicleType       `bson:"vehicle_type"`
	Items     []models.MaintenanceItem `bson:"items"`
	UpdatedAt time.Time                `bson:"updated_at"`
}

// MongoItemCollection implements ItemCollection for MongoDB
type MongoItemCollection struct {
	Collection *mongo.Collection
}

// LoadItems returns the scope's item set, or the vehicle preset when no
// override exists or the stored document cannot be read.
func (c *MongoItemCollection) LoadItems(ctx context.Context, scope models.Scope) ([]models.MaintenanceItem, error) {
	if c.Collection == nil {
		return models.DefaultMaintenanceItems(scope.Vehicle), fmt.Errorf("mongo collection is nil")
	}

	var doc itemSetDoc
	err := c.Collection.FindOne(ctx, scopeFilter(scope)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.DefaultMaintenanceItems(scope.Vehicle), nil
		}
		return models.DefaultMaintenanceItems(scope.Vehicle), err
	}
	if len(doc.Items) == 0 {
		return models.DefaultMaintenanceItems(scope.Vehicle), nil
	}
	return doc.Items, nil
}

// SaveItems upserts the scope's item set override.
func (c *MongoItemCollection) SaveItems(ctx context.Context, scope models.Scope, items []models.MaintenanceItem) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	doc := itemSetDoc{
		UserID:    scope.UserID,
		Vehicle:   scope.Vehicle,
		Items:     items,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := c.Collection.ReplaceOne(ctx, scopeFilter(scope), doc, opts)
	return err
}

// ResetItems deletes the scope's override, reverting it to the preset.
func (c *MongoItemCollection) ResetItems(ctx context.Context, scope models.Scope) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.DeleteMany(ctx, scopeFilter(scope))
	return err
}
