package services

import (
	"context"
	"fmt"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/realtime"
	"github.com/akinalp/firmenportal/repository"
)

// ProfileService interface'i — kullanıcının kendi profili üzerindeki
// operasyonlar. Rol ve aktiflik değişiklikleri burada YOKTUR — onlar
// sadece AdminService üzerinden yapılabilir.
type ProfileService interface {
	GetByID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	notifier    realtime.ChangeNotifier
}

// NewProfileService, constructor.
func NewProfileService(profileRepo repository.ProfileRepository, notifier realtime.ChangeNotifier) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

func (s *profileService) GetByID(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.PasswordHash = ""
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}

	if err := s.profileRepo.UpdateNames(ctx, userID, profile.FirstName, profile.LastName); err != nil {
		return nil, err
	}

	s.notifier.NotifyChange("profiles", realtime.ActionUpdate)

	profile.PasswordHash = ""
	return profile, nil
}
