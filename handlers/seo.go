package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/services"
)

// SEOHandler, SEO metadata endpoint'lerini yöneten struct.
// Lookup public'tir (her sayfa yüklemesinde çağrılır), geri kalanı admin.
type SEOHandler struct {
	seoService services.SEOService
}

// NewSEOHandler, constructor.
func NewSEOHandler(seoService services.SEOService) *SEOHandler {
	return &SEOHandler{seoService: seoService}
}

// Lookup godoc
// GET /api/seo/lookup?path=/leistungen
func (h *SEOHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	meta, err := h.seoService.Lookup(r.Context(), path)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, meta)
}

// List godoc
// GET /api/admin/seo
func (h *SEOHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.seoService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, entries)
}

// Upsert godoc
// PUT /api/admin/seo
// Aynı path için tekrar çağrılmak kaydı günceller.
func (h *SEOHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertSEORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	meta, err := h.seoService.Upsert(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, meta)
}

// Delete godoc
// DELETE /api/admin/seo?path=/leistungen
func (h *SEOHandler) Delete(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	if err := h.seoService.Delete(r.Context(), path); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "seo metadata deleted"})
}
