package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents app subscription roles
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePremium Role = "premium"
	RoleUser    Role = "user"
)

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RolePremium, RoleUser:
		return true
	default:
		return false
	}
}

// RoleGrant assigns a role to a user, optionally until an expiry date.
// A grant with a past expiry is kept in storage but never reported active.
type RoleGrant struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Role      Role               `json:"role" bson:"role"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Active reports whether the grant is in effect at the given instant.
func (g RoleGrant) Active(now time.Time) bool {
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}

// User represents a user in the system. Subscription roles live in separate
// RoleGrant records, not on the user document.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
	Roles        []Role `json:"roles"`
}

// Claims represents JWT claims. Roles are deliberately not embedded in the
// token: grants can expire or be revoked mid-session, so handlers resolve
// them through the role provider on every gated request.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
}
