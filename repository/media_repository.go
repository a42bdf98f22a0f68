package repository

import (
	"context"

	"github.com/akinalp/firmenportal/models"
)

// MediaRepository, medya kayıtları için interface.
//
// List, opsiyonel eşitlik filtreleri alır (tür ve/veya sayfa bağlamı).
// Boş sonuç hata değildir — boş slice döner; realtime re-fetch akışında
// "tablo boşaldı" da geçerli bir durumdur.
type MediaRepository interface {
	List(ctx context.Context, filter models.MediaFilter) ([]models.Media, error)
	GetByID(ctx context.Context, id string) (*models.Media, error)
	Create(ctx context.Context, media *models.Media) error
	Update(ctx context.Context, media *models.Media) error
	Delete(ctx context.Context, id string) error
}
