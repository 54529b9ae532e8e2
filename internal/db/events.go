package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fretecalc/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventCollection defines the interface for replacement event storage.
// Events are append/delete-only; once written they are never mutated.
type EventCollection interface {
	LoadEvents(ctx context.Context, scope models.Scope) ([]models.ReplacementEvent, error)
	AppendEvent(ctx context.Context, event models.ReplacementEvent) error
	DeleteEventByID(ctx context.Context, scope models.Scope, id string) error
}

// MongoEventCollection implements EventCollection for MongoDB
type MongoEventCollection struct {
	Collection *mongo.Collection
}

// LoadEvents returns a scope's replacement history, newest first. A scope
// without history yields an empty slice, never an error.
func (c *MongoEventCollection) LoadEvents(ctx context.Context, scope models.Scope) ([]models.ReplacementEvent, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.ReplacementEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// AppendEvent stores a new replacement event.
func (c *MongoEventCollection) AppendEvent(ctx context.Context, event models.ReplacementEvent) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	event.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, event)
	return err
}

// DeleteEventByID removes an event by id. Deleting an id that does not
// exist in the scope is a no-op.
func (c *MongoEventCollection) DeleteEventByID(ctx context.Context, scope models.Scope, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	filter := scopeFilter(scope)
	filter["_id"] = objectID
	_, err = c.Collection.DeleteOne(ctx, filter)
	return err
}
