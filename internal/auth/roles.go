package auth

import (
	"context"

	"github.com/fretecalc/backend/internal/models"
)

// RoleProvider resolves the currently active roles for a user. Expired
// grants are never reported. Any identity backend can satisfy this.
type RoleProvider interface {
	GetActiveRoles(ctx context.Context, userID string) ([]models.Role, error)
}

// AccessDecision is the outcome of a premium gate check.
type AccessDecision string

const (
	AccessAllowed         AccessDecision = "allowed"
	AccessRequiresLogin   AccessDecision = "requires_login"
	AccessRequiresUpgrade AccessDecision = "requires_upgrade"
)

// HasPremium reports whether the role set unlocks premium features.
// Admins always pass.
func HasPremium(roles []models.Role) bool {
	for _, r := range roles {
		if r == models.RolePremium || r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// HasAdmin reports whether the role set includes the admin role.
func HasAdmin(roles []models.Role) bool {
	for _, r := range roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// CheckAccess decides whether a gated action may run for the given caller.
// Anonymous callers are told to log in; logged-in callers without an active
// premium or admin grant are told to upgrade.
func CheckAccess(claims *models.Claims, roles []models.Role) AccessDecision {
	if claims == nil {
		return AccessRequiresLogin
	}
	if HasPremium(roles) {
		return AccessAllowed
	}
	return AccessRequiresUpgrade
}
