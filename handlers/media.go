package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/services"
)

// MediaHandler, medya endpoint'lerini yöneten struct.
type MediaHandler struct {
	mediaService  services.MediaService
	uploadService services.UploadService
}

// NewMediaHandler, constructor.
func NewMediaHandler(mediaService services.MediaService, uploadService services.UploadService) *MediaHandler {
	return &MediaHandler{
		mediaService:  mediaService,
		uploadService: uploadService,
	}
}

// List godoc
// GET /api/media?type=image&page=startseite
// Query parametreleri opsiyoneldir — verilmeyen filtre uygulanmaz.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter models.MediaFilter

	if t := r.URL.Query().Get("type"); t != "" {
		mt := models.MediaType(t)
		if !mt.Valid() {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "type must be one of: image, video")
			return
		}
		filter.Type = &mt
	}

	if page := r.URL.Query().Get("page"); page != "" {
		filter.PageContext = &page
	}

	media, err := h.mediaService.List(r.Context(), filter)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, media)
}

// Get godoc
// GET /api/media/{id}
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	media, err := h.mediaService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, media)
}

// Create godoc
// POST /api/media
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	media, err := h.mediaService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, media)
}

// Update godoc
// PATCH /api/media/{id}
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	media, err := h.mediaService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, media)
}

// Delete godoc
// DELETE /api/media/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.mediaService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "media deleted"})
}

// Upload godoc
// POST /api/media/upload
// multipart/form-data: file=<dosya>, title=<başlık>, page_context=<ops>
//
// Dosya diske kaydedilir ve aynı istekte media kaydı oluşturulur —
// frontend tek çağrıyla yükleyip listeye ekler.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	url, mediaType, err := h.uploadService.SaveFile(file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	req := models.CreateMediaRequest{
		Title: title,
		URL:   url,
		Type:  string(mediaType),
	}
	if page := r.FormValue("page_context"); page != "" {
		req.PageContext = &page
	}
	if desc := r.FormValue("description"); desc != "" {
		req.Description = &desc
	}

	media, err := h.mediaService.Create(r.Context(), &req)
	if err != nil {
		// Kayıt oluşmadıysa diskteki dosya sahipsiz kalmasın.
		_ = h.uploadService.DeleteFile(url)
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, media)
}
