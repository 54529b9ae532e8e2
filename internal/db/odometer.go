package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fretecalc/backend/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OdometerCollection defines the interface for the current-km-per-scope state.
type OdometerCollection interface {
	LoadOdometer(ctx context.Context, scope models.Scope) (float64, error)
	SaveOdometer(ctx context.Context, scope models.Scope, km float64) error
}

// MongoOdometerCollection implements OdometerCollection for MongoDB
type MongoOdometerCollection struct {
	Collection *mongo.Collection
}

// LoadOdometer returns the current odometer value for a scope, 0 when the
// scope has never recorded one.
func (c *MongoOdometerCollection) LoadOdometer(ctx context.Context, scope models.Scope) (float64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}

	var reading models.OdometerReading
	err := c.Collection.FindOne(ctx, scopeFilter(scope)).Decode(&reading)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	return reading.Km, nil
}

// SaveOdometer upserts the current odometer value for a scope.
func (c *MongoOdometerCollection) SaveOdometer(ctx context.Context, scope models.Scope, km float64) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	reading := models.OdometerReading{
		UserID:    scope.UserID,
		Vehicle:   scope.Vehicle,
		Km:        km,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := c.Collection.ReplaceOne(ctx, scopeFilter(scope), reading, opts)
	return err
}
