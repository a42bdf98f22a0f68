package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MediaType, bir medya kaydının türünü temsil eder.
type MediaType string

// İzin verilen MediaType değerleri.
const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Valid, medya türünün tanımlı değerlerden biri olup olmadığını kontrol eder.
func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// Media, site içeriğinde kullanılan bir medya kaydını temsil eder.
//
// PageContext opsiyoneldir — medyanın hangi sayfaya ait olduğunu belirtir
// (ör: "startseite", "leistungen"). nil ise medya sayfa bağımsızdır.
type Media struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Type        MediaType `json:"type"`
	PageContext *string   `json:"page_context"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MediaFilter, liste sorgusu için opsiyonel eşitlik filtreleri.
// nil field → filtre uygulanmaz.
type MediaFilter struct {
	Type        *MediaType
	PageContext *string
}

// CreateMediaRequest, yeni medya kaydı için frontend'den gelen veri.
type CreateMediaRequest struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Type        string  `json:"type"`
	PageContext *string `json:"page_context"`
	Description *string `json:"description"`
}

// Validate, CreateMediaRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateMediaRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(r.Title) > 200 {
		return fmt.Errorf("title must be at most 200 characters")
	}

	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return fmt.Errorf("url is required")
	}

	if !MediaType(r.Type).Valid() {
		return fmt.Errorf("type must be one of: image, video")
	}

	return nil
}

// UpdateMediaRequest, mevcut medya kaydı güncellemesi.
// Pointer field'lar "gönderilmedi" ile "boş gönderildi"yi ayırır.
type UpdateMediaRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Type        *string `json:"type"`
	PageContext *string `json:"page_context"`
	Description *string `json:"description"`
}

// Validate, UpdateMediaRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateMediaRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if *r.Title == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if utf8.RuneCountInString(*r.Title) > 200 {
			return fmt.Errorf("title must be at most 200 characters")
		}
	}

	if r.URL != nil && strings.TrimSpace(*r.URL) == "" {
		return fmt.Errorf("url cannot be empty")
	}

	if r.Type != nil && !MediaType(*r.Type).Valid() {
		return fmt.Errorf("type must be one of: image, video")
	}

	return nil
}
