package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fretecalc/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RoleGrantCollection defines the interface for role grant operations.
// It doubles as the role provider consulted by the premium gate.
type RoleGrantCollection interface {
	GetActiveRoles(ctx context.Context, userID string) ([]models.Role, error)
	GrantsForUser(ctx context.Context, userID string) ([]models.RoleGrant, error)
	GrantsForAllUsers(ctx context.Context) (map[string][]models.RoleGrant, error)
	SetRole(ctx context.Context, userID string, role models.Role, expiresAt *time.Time) error
	ExpireRole(ctx context.Context, userID string, role models.Role) error
}

// MongoRoleGrantCollection implements RoleGrantCollection for MongoDB
type MongoRoleGrantCollection struct {
	Collection *mongo.Collection
}

// GetActiveRoles returns the unexpired roles granted to a user. Users with
// no grants implicitly hold the base "user" role.
func (c *MongoRoleGrantCollection) GetActiveRoles(ctx context.Context, userID string) ([]models.Role, error) {
	grants, err := c.GrantsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	roles := []models.Role{}
	for _, g := range grants {
		if g.Active(now) {
			roles = append(roles, g.Role)
		}
	}
	if len(roles) == 0 {
		roles = append(roles, models.RoleUser)
	}
	return roles, nil
}

// GrantsForUser returns every grant record for a user, expired ones included.
func (c *MongoRoleGrantCollection) GrantsForUser(ctx context.Context, userID string) ([]models.RoleGrant, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []models.RoleGrant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// GrantsForAllUsers returns all grants keyed by user ID. The admin user
// list joins this against the user collection.
func (c *MongoRoleGrantCollection) GrantsForAllUsers(ctx context.Context) (map[string][]models.RoleGrant, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []models.RoleGrant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}

	byUser := make(map[string][]models.RoleGrant)
	for _, g := range grants {
		byUser[g.UserID] = append(byUser[g.UserID], g)
	}
	return byUser, nil
}

// SetRole replaces a user's subscription role. Granting premium or user
// removes prior premium/user grants but keeps an admin grant; granting
// admin removes every existing grant first.
func (c *MongoRoleGrantCollection) SetRole(ctx context.Context, userID string, role models.Role, expiresAt *time.Time) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	filter := bson.M{"user_id": userID, "role": bson.M{"$in": []models.Role{models.RolePremium, models.RoleUser}}}
	if role == models.RoleAdmin {
		filter = bson.M{"user_id": userID}
	}
	if _, err := c.Collection.DeleteMany(ctx, filter); err != nil {
		return err
	}

	grant := models.RoleGrant{
		UserID:    userID,
		Role:      role,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	_, err := c.Collection.InsertOne(ctx, grant)
	return err
}

// ExpireRole marks a grant as expired immediately. No-op if the user does
// not hold the role.
func (c *MongoRoleGrantCollection) ExpireRole(ctx context.Context, userID string, role models.Role) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	now := time.Now()
	_, err := c.Collection.UpdateMany(
		ctx,
		bson.M{"user_id": userID, "role": role},
		bson.M{"$set": bson.M{"expires_at": now}},
	)
	return err
}
