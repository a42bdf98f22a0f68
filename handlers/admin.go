package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/services"
)

// AdminHandler, yönetim paneli endpoint'lerini yöneten struct.
//
// Bu handler'a giden her route, main.go'da Auth + RequireAdmin middleware
// zincirinin ARKASINA bağlanır — yetki kontrolü mutasyondan önce biter,
// yetkisiz istek service katmanına hiç ulaşmaz.
type AdminHandler struct {
	adminService services.AdminService
}

// NewAdminHandler, constructor.
func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers godoc
// GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, users)
}

// UpdateUser godoc
// PATCH /api/admin/users/{id}
// Body: { "role": "mitarbeiter", "is_active": false } — en az biri gerekli.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	targetID := r.PathValue("id")
	if targetID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "user id is required")
		return
	}

	var req models.AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.adminService.UpdateUser(r.Context(), actor.ID, targetID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, updated)
}

// CreateAdminUser godoc
// POST /api/admin/users
// Yeni admin hesabı + hoş geldin email'i tek transaction'da oluşur.
func (h *AdminHandler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.adminService.CreateAdminUser(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, profile)
}

// SendWelcomeEmail godoc
// POST /api/admin/welcome-email
// Body: { "email": "...", "role": "kunde" }
func (h *AdminHandler) SendWelcomeEmail(w http.ResponseWriter, r *http.Request) {
	var req models.WelcomeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.SendWelcomeEmail(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusAccepted, map[string]string{"message": "welcome email queued"})
}
