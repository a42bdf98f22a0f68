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

// MediaService interface'i — medya kayıtları CRUD.
//
// Her yazma operasyonu sonrası realtime hub'a "media" tablosu için
// change event gönderilir — açık olan admin paneller listelerini
// yeniden çeker.
type MediaService interface {
	List(ctx context.Context, filter models.MediaFilter) ([]models.Media, error)
	GetByID(ctx context.Context, id string) (*models.Media, error)
	Create(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error)
	Update(ctx context.Context, id string, req *models.UpdateMediaRequest) (*models.Media, error)
	Delete(ctx context.Context, id string) error
}

type mediaService struct {
	mediaRepo repository.MediaRepository
	notifier  realtime.ChangeNotifier
	idGen     IDGenerator
}

// NewMediaService, constructor.
func NewMediaService(mediaRepo repository.MediaRepository, notifier realtime.ChangeNotifier, idGen IDGenerator) MediaService {
	return &mediaService{
		mediaRepo: mediaRepo,
		notifier:  notifier,
		idGen:     idGen,
	}
}

func (s *mediaService) List(ctx context.Context, filter models.MediaFilter) ([]models.Media, error) {
	return s.mediaRepo.List(ctx, filter)
}

func (s *mediaService) GetByID(ctx context.Context, id string) (*models.Media, error) {
	return s.mediaRepo.GetByID(ctx, id)
}

func (s *mediaService) Create(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	media := &models.Media{
		ID:          s.idGen.NewID(),
		Title:       req.Title,
		URL:         req.URL,
		Type:        models.MediaType(req.Type),
		PageContext: req.PageContext,
		Description: req.Description,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, err
	}

	log.Printf("[media] created: %s", media.ID)
	s.notifier.NotifyChange("media", realtime.ActionInsert)

	return media, nil
}

func (s *mediaService) Update(ctx context.Context, id string, req *models.UpdateMediaRequest) (*models.Media, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		media.Title = *req.Title
	}
	if req.URL != nil {
		media.URL = *req.URL
	}
	if req.Type != nil {
		media.Type = models.MediaType(*req.Type)
	}
	if req.PageContext != nil {
		media.PageContext = req.PageContext
	}
	if req.Description != nil {
		media.Description = req.Description
	}

	if err := s.mediaRepo.Update(ctx, media); err != nil {
		return nil, err
	}

	log.Printf("[media] updated: %s", media.ID)
	s.notifier.NotifyChange("media", realtime.ActionUpdate)

	return media, nil
}

func (s *mediaService) Delete(ctx context.Context, id string) error {
	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("[media] deleted: %s", id)
	s.notifier.NotifyChange("media", realtime.ActionDelete)

	return nil
}
