package services

import (
	"context"
	"fmt"
	"log"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/realtime"
	"github.com/akinalp/firmenportal/repository"
)

// SEOService interface'i — sayfa bazlı SEO metadata yönetimi.
//
// Lookup, public endpoint'tir ve her sayfa yüklemesinde çağrılır — DB'ye
// gitmek yerine realtime Collection cache'inden okur. Cache, "seo_metadata"
// tablosundaki her değişiklikte hub event'i ile kendini yeniler.
type SEOService interface {
	Lookup(ctx context.Context, path string) (*models.SEOMetadata, error)
	List(ctx context.Context) ([]models.SEOMetadata, error)
	Upsert(ctx context.Context, req *models.UpsertSEORequest) (*models.SEOMetadata, error)
	Delete(ctx context.Context, path string) error
	// Close, cache'in hub aboneliğini bırakır. Shutdown sırasında çağrılır.
	Close()
}

type seoService struct {
	seoRepo  repository.SEORepository
	notifier realtime.ChangeNotifier
	cache    *realtime.Collection[models.SEOMetadata]
}

// NewSEOService, constructor. Hub'a abone olan lookup cache'ini kurar ve
// ilk yüklemeyi senkron yapar.
func NewSEOService(ctx context.Context, seoRepo repository.SEORepository, hub *realtime.Hub) SEOService {
	cache := realtime.NewCollection(ctx, hub, "seo_metadata", func(ctx context.Context) ([]models.SEOMetadata, error) {
		return seoRepo.List(ctx)
	})

	return &seoService{
		seoRepo:  seoRepo,
		notifier: hub,
		cache:    cache,
	}
}

// Lookup, verilen path'in SEO kaydını cache'ten bulur.
// Cache henüz hiç dolmadıysa (ilk fetch başarısız) DB'ye düşer.
func (s *seoService) Lookup(ctx context.Context, path string) (*models.SEOMetadata, error) {
	entries, err := s.cache.Snapshot()
	if err != nil && !s.cache.Loaded() {
		return s.seoRepo.GetByPath(ctx, path)
	}

	for i := range entries {
		if entries[i].Path == path {
			return &entries[i], nil
		}
	}

	return nil, pkg.ErrNotFound
}

func (s *seoService) List(ctx context.Context) ([]models.SEOMetadata, error) {
	return s.seoRepo.List(ctx)
}

func (s *seoService) Upsert(ctx context.Context, req *models.UpsertSEORequest) (*models.SEOMetadata, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	meta := &models.SEOMetadata{
		Path:        req.Path,
		Title:       req.Title,
		Description: req.Description,
		Keywords:    req.Keywords,
	}

	if err := s.seoRepo.Upsert(ctx, meta); err != nil {
		return nil, err
	}

	log.Printf("[seo] upserted: %s", meta.Path)
	s.notifier.NotifyChange("seo_metadata", realtime.ActionUpdate)

	return meta, nil
}

func (s *seoService) Delete(ctx context.Context, path string) error {
	if err := s.seoRepo.Delete(ctx, path); err != nil {
		return err
	}

	log.Printf("[seo] deleted: %s", path)
	s.notifier.NotifyChange("seo_metadata", realtime.ActionDelete)

	return nil
}

func (s *seoService) Close() {
	s.cache.Close()
}
