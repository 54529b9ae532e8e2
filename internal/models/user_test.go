package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RolePremium))
	assert.True(t, IsValidRole(RoleUser))
	assert.False(t, IsValidRole(Role("manager")))
	assert.False(t, IsValidRole(Role("")))
}

func TestRoleGrant_Active(t *testing.T) {
	now := time.Now()

	permanent := RoleGrant{Role: RolePremium}
	assert.True(t, permanent.Active(now))

	future := now.Add(24 * time.Hour)
	running := RoleGrant{Role: RolePremium, ExpiresAt: &future}
	assert.True(t, running.Active(now))

	past := now.Add(-time.Minute)
	lapsed := RoleGrant{Role: RolePremium, ExpiresAt: &past}
	assert.False(t, lapsed.Active(now))

	// Boundary: a grant expiring exactly now is no longer active.
	exact := RoleGrant{Role: RolePremium, ExpiresAt: &now}
	assert.False(t, exact.Active(now))
}

func TestIsValidVehicleType(t *testing.T) {
	assert.True(t, IsValidVehicleType(VehicleMoto))
	assert.True(t, IsValidVehicleType(VehicleCarro))
	assert.False(t, IsValidVehicleType(VehicleType("bike")))
}
