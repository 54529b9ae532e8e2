package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/models"
)

// AdminHandler handles user and role management. Every route here sits
// behind the admin middleware.
type AdminHandler struct {
	users db.UserCollection
	roles db.RoleGrantCollection
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(users db.UserCollection, roles db.RoleGrantCollection) *AdminHandler {
	return &AdminHandler{users: users, roles: roles}
}

// UserWithRoles is one row of the admin user list.
type UserWithRoles struct {
	User   models.User        `json:"user"`
	Grants []models.RoleGrant `json:"grants"`
	Roles  []models.Role      `json:"roles"`
}

// ListUsers returns every user joined with their role grants. Expired
// grants are included so admins can see and renew lapsed subscriptions,
// but the active role list filters them out.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load users", http.StatusInternalServerError)
		return
	}

	grantsByUser, err := h.roles.GrantsForAllUsers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load roles", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	result := make([]UserWithRoles, 0, len(users))
	for _, user := range users {
		grants := grantsByUser[user.ID.Hex()]
		active := []models.Role{}
		for _, g := range grants {
			if g.Active(now) {
				active = append(active, g.Role)
			}
		}
		if len(active) == 0 {
			active = append(active, models.RoleUser)
		}
		result = append(result, UserWithRoles{User: user, Grants: grants, Roles: active})
	}

	writeJSON(w, http.StatusOK, result)
}

// SetRoleRequest assigns a role to a user with an optional expiry.
type SetRoleRequest struct {
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

// SetRole replaces a user's subscription role.
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req SetRoleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.UserID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}
	if !models.IsValidRole(req.Role) {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}
	if _, err := h.users.FindUserByID(r.Context(), req.UserID); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if err := h.roles.SetRole(r.Context(), req.UserID, req.Role, req.ExpiresAt); err != nil {
		http.Error(w, "Failed to set role", http.StatusInternalServerError)
		return
	}

	roles, err := h.roles.GetActiveRoles(r.Context(), req.UserID)
	if err != nil {
		roles = []models.Role{req.Role}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": req.UserID,
		"roles":   roles,
	})
}

// ExpireRoleRequest revokes a role immediately.
type ExpireRoleRequest struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
}

// ExpireRole marks a user's grant as expired now.
func (h *AdminHandler) ExpireRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req ExpireRoleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || !models.IsValidRole(req.Role) {
		http.Error(w, "User ID and a valid role are required", http.StatusBadRequest)
		return
	}

	if err := h.roles.ExpireRole(r.Context(), req.UserID, req.Role); err != nil {
		http.Error(w, "Failed to expire role", http.StatusInternalServerError)
		return
	}

	roles, err := h.roles.GetActiveRoles(r.Context(), req.UserID)
	if err != nil {
		roles = []models.Role{models.RoleUser}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": req.UserID,
		"roles":   roles,
	})
}
