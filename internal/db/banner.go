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

// BannerCollection defines the interface for banner storage.
type BannerCollection interface {
	ListActiveBanners(ctx context.Context) ([]models.Banner, error)
	ListBanners(ctx context.Context) ([]models.Banner, error)
	InsertBanner(ctx context.Context, banner models.Banner) error
	UpdateBanner(ctx context.Context, id string, banner models.Banner) error
	DeleteBanner(ctx context.Context, id string) error
}

// MongoBannerCollection implements BannerCollection for MongoDB
type MongoBannerCollection struct {
	Collection *mongo.Collection
}

func (c *MongoBannerCollection) list(ctx context.Context, filter bson.M) ([]models.Banner, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	banners := []models.Banner{}
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

// ListActiveBanners returns the banners currently shown in the app.
func (c *MongoBannerCollection) ListActiveBanners(ctx context.Context) ([]models.Banner, error) {
	return c.list(ctx, bson.M{"active": true})
}

// ListBanners returns every banner, active or not.
func (c *MongoBannerCollection) ListBanners(ctx context.Context) ([]models.Banner, error) {
	return c.list(ctx, bson.M{})
}

// InsertBanner stores a new banner.
func (c *MongoBannerCollection) InsertBanner(ctx context.Context, banner models.Banner) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, banner)
	return err
}

// UpdateBanner updates a banner by its ID.
func (c *MongoBannerCollection) UpdateBanner(ctx context.Context, id string, banner models.Banner) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid banner ID: %w", err)
	}

	banner.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": banner})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("banner not found")
	}
	return nil
}

// DeleteBanner deletes a banner by its ID.
func (c *MongoBannerCollection) DeleteBanner(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid banner ID: %w", err)
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
