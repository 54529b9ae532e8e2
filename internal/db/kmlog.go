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

// DistanceLogCollection defines the interface for distance log storage.
type DistanceLogCollection interface {
	LoadRecords(ctx context.Context, scope models.Scope) ([]models.DistanceRecord, error)
	LoadRecordsForMonth(ctx context.Context, scope models.Scope, year int, month time.Month) ([]models.DistanceRecord, error)
	AppendRecord(ctx context.Context, record models.DistanceRecord) error
	DeleteRecordByID(ctx context.Context, scope models.Scope, id string) error
}

// MongoDistanceLogCollection implements DistanceLogCollection for MongoDB
type MongoDistanceLogCollection struct {
	Collection *mongo.Collection
}

// LoadRecords returns a scope's distance log ordered by date ascending.
func (c *MongoDistanceLogCollection) LoadRecords(ctx context.Context, scope models.Scope) ([]models.DistanceRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.M{"date": 1})
	cursor, err := c.Collection.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.DistanceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadRecordsForMonth returns the records of one calendar month, ordered by
// date ascending. Dates are stored as yyyy-MM-dd strings, so a prefix range
// on the month is enough.
func (c *MongoDistanceLogCollection) LoadRecordsForMonth(ctx context.Context, scope models.Scope, year int, month time.Month) ([]models.DistanceRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	prefix := fmt.Sprintf("%04d-%02d", year, int(month))
	filter := scopeFilter(scope)
	filter["date"] = bson.M{"$gte": prefix + "-01", "$lte": prefix + "-31"}

	opts := options.Find().SetSort(bson.M{"date": 1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.DistanceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AppendRecord stores a new distance log record.
func (c *MongoDistanceLogCollection) AppendRecord(ctx context.Context, record models.DistanceRecord) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	record.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, record)
	return err
}

// DeleteRecordByID removes a record by id; no-op when absent.
func (c *MongoDistanceLogCollection) DeleteRecordByID(ctx context.Context, scope models.Scope, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid record ID: %w", err)
	}

	filter := scopeFilter(scope)
	filter["_id"] = objectID
	_, err = c.Collection.DeleteOne(ctx, filter)
	return err
}
