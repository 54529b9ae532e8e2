package handlers

import (
	"net/http"
	"os"

	"github.com/fretecalc/backend/internal/auth"
	"github.com/fretecalc/backend/internal/middleware"
	"github.com/fretecalc/backend/internal/models"
)

// GateHandler answers premium gate checks. There is no payment flow: the
// upsell is informational only and points at a manual contact channel.
type GateHandler struct {
	roleProvider auth.RoleProvider
}

// NewGateHandler creates a new gate handler
func NewGateHandler(roleProvider auth.RoleProvider) *GateHandler {
	return &GateHandler{roleProvider: roleProvider}
}

// GateResponse is the decision for a gated feature.
type GateResponse struct {
	Feature  string              `json:"feature"`
	Decision auth.AccessDecision `json:"decision"`
	Contact  string              `json:"contact,omitempty"`
}

// Check returns whether the caller may use a gated feature. Anonymous
// callers are asked to log in; logged-in callers without premium get the
// upgrade contact link.
func (h *GateHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	feature := r.URL.Query().Get("feature")
	if feature == "" {
		http.Error(w, "Feature is required", http.StatusBadRequest)
		return
	}

	claims, _ := middleware.GetUserFromContext(r.Context())

	var roles []models.Role
	if claims != nil {
		resolved, err := h.roleProvider.GetActiveRoles(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "Failed to resolve roles", http.StatusInternalServerError)
			return
		}
		roles = resolved
	}

	decision := auth.CheckAccess(claims, roles)
	resp := GateResponse{Feature: feature, Decision: decision}
	if decision == auth.AccessRequiresUpgrade {
		resp.Contact = upgradeContact()
	}

	writeJSON(w, http.StatusOK, resp)
}

func upgradeContact() string {
	if contact := os.Getenv("UPGRADE_CONTACT_URL"); contact != "" {
		return contact
	}
	return "https://wa.me/5547999999999"
}
