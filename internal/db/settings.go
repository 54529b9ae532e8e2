package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fretecalc/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsCollection defines the interface for rate config storage.
type SettingsCollection interface {
	LoadConfig(ctx context.Context, scope models.Scope) (models.RateConfig, error)
	SaveConfig(ctx context.Context, scope models.Scope, cfg models.RateConfig) error
}

type settingsDoc struct {
	UserID    string             `bson:"user_id"`
	Vehicle   models.VehicleType `bson:"vehicle_type"`
	Config    models.RateConfig  `bson:"config"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// MongoSettingsCollection implements SettingsCollection for MongoDB
type MongoSettingsCollection struct {
	Collection *mongo.Collection
}

// LoadConfig returns the stored rate config for a scope, sanitized against
// the vehicle preset. A missing or unreadable document falls back to the
// preset; storage problems never surface past this layer as bad config.
func (c *MongoSettingsCollection) LoadConfig(ctx context.Context, scope models.Scope) (models.RateConfig, error) {
	if c.Collection == nil {
		return models.DefaultRateConfig(scope.Vehicle), fmt.Errorf("mongo collection is nil")
	}

	var doc settingsDoc
	err := c.Collection.FindOne(ctx, scopeFilter(scope)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.DefaultRateConfig(scope.Vehicle), nil
		}
		return models.DefaultRateConfig(scope.Vehicle), err
	}
	return doc.Config.Sanitize(scope.Vehicle), nil
}

// SaveConfig upserts the rate config for a scope.
func (c *MongoSettingsCollection) SaveConfig(ctx context.Context, scope models.Scope, cfg models.RateConfig) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	doc := settingsDoc{
		UserID:    scope.UserID,
		Vehicle:   scope.Vehicle,
		Config:    cfg,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := c.Collection.ReplaceOne(ctx, scopeFilter(scope), doc, opts)
	return err
}

func scopeFilter(scope models.Scope) bson.M {
	return bson.M{"user_id": scope.UserID, "vehicle_type": scope.Vehicle}
}
