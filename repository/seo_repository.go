package repository

import (
	"context"

	"github.com/akinalp/firmenportal/models"
)

// SEORepository, sayfa bazlı SEO metadata kayıtları için interface.
//
// Upsert: path primary key olduğu için INSERT OR UPDATE semantiği —
// bir path için asla iki kayıt oluşamaz.
type SEORepository interface {
	GetByPath(ctx context.Context, path string) (*models.SEOMetadata, error)
	List(ctx context.Context) ([]models.SEOMetadata, error)
	Upsert(ctx context.Context, meta *models.SEOMetadata) error
	Delete(ctx context.Context, path string) error
}
