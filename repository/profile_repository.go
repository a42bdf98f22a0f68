// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface sayesinde:
// 1. Test: fake repository ile DB olmadan test edilebilir
// 2. Esneklik: SQLite'tan başka bir store'a geçiş sadece yeni implementasyon
// 3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
package repository

import (
	"context"

	"github.com/akinalp/firmenportal/models"
)

// ProfileRepository, profil (kullanıcı hesabı) veritabanı işlemleri için interface.
//
// Rol güncellemesi ayrı bir metod (UpdateRole) — genel Update'in içinde
// gizlenmez, çağıran tarafın yetki kontrolünden geçtiği açıkça görülür.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]models.Profile, error)
	// UpdateNames, kullanıcının kendi düzenleyebildiği alanları günceller.
	UpdateNames(ctx context.Context, id, firstName, lastName string) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
	UpdateActive(ctx context.Context, id string, isActive bool) error
	UpdatePassword(ctx context.Context, id, newPasswordHash string) error
	// TouchLastSignIn, başarılı login'de last_sign_in_at'i günceller.
	TouchLastSignIn(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
