package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/pkg/email"
	"github.com/akinalp/firmenportal/realtime"
	"github.com/akinalp/firmenportal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminService interface'i — yönetim paneli operasyonları.
//
// Buradaki her operasyon ayrıcalıklıdır: handler katmanı admin rolünü
// middleware ile doğrulamadan bu service'e asla ulaşamaz. Service yine de
// actor bazlı kuralları (kendi hesabını kilitleme vb.) kendisi uygular.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.AdminUserListItem, error)
	// UpdateUser, hedef kullanıcının rolünü ve/veya aktifliğini değiştirir.
	// actorID, işlemi yapan admin'dir — kendi rolünü düşürmesi veya kendi
	// hesabını deaktive etmesi engellenir (panele erişimi kilitlememek için).
	UpdateUser(ctx context.Context, actorID, targetID string, req *models.AdminUpdateUserRequest) (*models.Profile, error)
	// CreateAdminUser, yeni admin hesabı + hoş geldin email'ini tek
	// transaction içinde oluşturur. Email kuyruğa yazılamazsa hesap da
	// oluşmaz.
	CreateAdminUser(ctx context.Context, req *models.CreateAdminUserRequest) (*models.Profile, error)
	SendWelcomeEmail(ctx context.Context, req *models.WelcomeEmailRequest) error
}

type adminService struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	emailRepo   repository.EmailQueueRepository
	txRunner    TxRunner
	notifier    realtime.ChangeNotifier
	idGen       IDGenerator
	appURL      string
}

// NewAdminService, constructor.
func NewAdminService(
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	emailRepo repository.EmailQueueRepository,
	txRunner TxRunner,
	notifier realtime.ChangeNotifier,
	idGen IDGenerator,
	appURL string,
) AdminService {
	return &adminService{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		emailRepo:   emailRepo,
		txRunner:    txRunner,
		notifier:    notifier,
		idGen:       idGen,
		appURL:      appURL,
	}
}

// ListUsers, tüm kullanıcıları panel formatında listeler.
func (s *adminService) ListUsers(ctx context.Context) ([]models.AdminUserListItem, error) {
	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.AdminUserListItem, 0, len(profiles))
	for _, p := range profiles {
		item := models.AdminUserListItem{
			ID:        p.ID,
			Email:     p.Email,
			Role:      p.Role,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
			IsActive:  p.IsActive,
		}
		if p.LastSignInAt != nil {
			ts := p.LastSignInAt.Format(time.RFC3339)
			item.LastSignInAt = &ts
		}
		items = append(items, item)
	}

	return items, nil
}

// UpdateUser, rol ve/veya aktiflik günceller.
func (s *adminService) UpdateUser(ctx context.Context, actorID, targetID string, req *models.AdminUpdateUserRequest) (*models.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	target, err := s.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		newRole := models.Role(*req.Role)
		if actorID == targetID && target.Role.IsAdmin() && !newRole.IsAdmin() {
			return nil, fmt.Errorf("%w: cannot remove your own admin role", pkg.ErrForbidden)
		}
		if err := s.profileRepo.UpdateRole(ctx, targetID, newRole); err != nil {
			return nil, err
		}
		target.Role = newRole
	}

	if req.IsActive != nil {
		if actorID == targetID && !*req.IsActive {
			return nil, fmt.Errorf("%w: cannot deactivate your own account", pkg.ErrForbidden)
		}
		if err := s.profileRepo.UpdateActive(ctx, targetID, *req.IsActive); err != nil {
			return nil, err
		}
		target.IsActive = *req.IsActive

		// Deaktive edilen kullanıcının açık oturumları anında iptal edilir —
		// elindeki refresh token artık çalışmaz.
		if !*req.IsActive {
			if err := s.sessionRepo.DeleteByUserID(ctx, targetID); err != nil {
				return nil, fmt.Errorf("failed to revoke sessions: %w", err)
			}
		}
	}

	log.Printf("[admin] user updated: target=%s by=%s", targetID, actorID)
	s.notifier.NotifyChange("profiles", realtime.ActionUpdate)

	target.PasswordHash = ""
	return target, nil
}

// CreateAdminUser, profil + hoş geldin email'ini atomik oluşturur.
func (s *adminService) CreateAdminUser(ctx context.Context, req *models.CreateAdminUserRequest) (*models.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		ID:           s.idGen.NewID(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}

	subject, body := email.WelcomeMessage(string(models.RoleAdmin), s.appURL)
	msg := &models.EmailMessage{
		ID:      s.idGen.NewID(),
		ToEmail: req.Email,
		Subject: subject,
		Text:    body,
	}

	err = s.txRunner.InTx(ctx, func(repos TxRepos) error {
		if err := repos.Profiles.Create(ctx, profile); err != nil {
			return err
		}
		return repos.Emails.Enqueue(ctx, msg)
	})
	if err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	log.Printf("[admin] admin user created: %s", profile.ID)
	s.notifier.NotifyChange("profiles", realtime.ActionInsert)

	profile.PasswordHash = ""
	return profile, nil
}

// SendWelcomeEmail, verilen adrese rolüne uygun hoş geldin email'i kuyruklar.
// Gönderim asenkron — arka plandaki worker kuyruğu boşaltır.
func (s *adminService) SendWelcomeEmail(ctx context.Context, req *models.WelcomeEmailRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	subject, body := email.WelcomeMessage(req.Role, s.appURL)
	msg := &models.EmailMessage{
		ID:      s.idGen.NewID(),
		ToEmail: req.Email,
		Subject: subject,
		Text:    body,
	}

	if err := s.emailRepo.Enqueue(ctx, msg); err != nil {
		return err
	}

	log.Printf("[admin] welcome email queued: to=%s role=%s", req.Email, req.Role)
	return nil
}
