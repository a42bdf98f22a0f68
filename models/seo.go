package models

import (
	"fmt"
	"strings"
	"time"
)

// SEOMetadata, bir sayfa path'i için SEO alanlarını tutar.
// path primary key'dir — her sayfanın en fazla bir kaydı olur,
// yazma işlemi upsert semantiği taşır.
type SEOMetadata struct {
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    string    `json:"keywords"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertSEORequest, SEO kaydı oluşturma/güncelleme isteği.
type UpsertSEORequest struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// Validate, UpsertSEORequest'in geçerli olup olmadığını kontrol eder.
// Path her zaman "/" ile başlar — frontend route'ları ile birebir eşleşmeli.
func (r *UpsertSEORequest) Validate() error {
	r.Path = strings.TrimSpace(r.Path)
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("path must start with /")
	}

	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Keywords = strings.TrimSpace(r.Keywords)

	return nil
}
