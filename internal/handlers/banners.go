package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/models"
)

// BannerHandler handles banner display and administration.
type BannerHandler struct {
	banners db.BannerCollection
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(banners db.BannerCollection) *BannerHandler {
	return &BannerHandler{banners: banners}
}

// ListActive returns the banners currently shown in the app, optionally
// filtered by position. This endpoint is public.
func (h *BannerHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	banners, err := h.banners.ListActiveBanners(r.Context())
	if err != nil {
		http.Error(w, "Failed to load banners", http.StatusInternalServerError)
		return
	}

	if position := r.URL.Query().Get("position"); position != "" {
		filtered := []models.Banner{}
		for _, b := range banners {
			if b.Position == position {
				filtered = append(filtered, b)
			}
		}
		banners = filtered
	}

	writeJSON(w, http.StatusOK, banners)
}

// Manage routes GET (all banners), POST (create), PUT (update) and DELETE
// for /api/admin/banners. Admin middleware guards this route.
func (h *BannerHandler) Manage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		banners, err := h.banners.ListBanners(r.Context())
		if err != nil {
			http.Error(w, "Failed to load banners", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, banners)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BannerHandler) create(w http.ResponseWriter, r *http.Request) {
	banner, ok := decodeBanner(w, r)
	if !ok {
		return
	}

	if err := h.banners.InsertBanner(r.Context(), banner); err != nil {
		http.Error(w, "Failed to create banner", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, banner)
}

func (h *BannerHandler) update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Banner ID is required", http.StatusBadRequest)
		return
	}

	banner, ok := decodeBanner(w, r)
	if !ok {
		return
	}

	if err := h.banners.UpdateBanner(r.Context(), id, banner); err != nil {
		http.Error(w, "Failed to update banner", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, banner)
}

func (h *BannerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Banner ID is required", http.StatusBadRequest)
		return
	}

	if err := h.banners.DeleteBanner(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete banner", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBanner(w http.ResponseWriter, r *http.Request) (models.Banner, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return models.Banner{}, false
	}

	var banner models.Banner
	if err := json.Unmarshal(body, &banner); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return models.Banner{}, false
	}
	if banner.ImageURL == "" || banner.Position == "" {
		http.Error(w, "Image URL and position are required", http.StatusBadRequest)
		return models.Banner{}, false
	}
	return banner, true
}
