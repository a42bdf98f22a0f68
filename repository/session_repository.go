package repository

import (
	"context"

	"github.com/akinalp/firmenportal/models"
)

// SessionRepository, refresh token oturumları için interface.
//
// DeleteByUserID: hesap deaktive edildiğinde kullanıcının TÜM oturumları
// tek seferde düşürülür — deaktivasyon anında etkili olmalıdır.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}
