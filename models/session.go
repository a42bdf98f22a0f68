package models

import "time"

// Session, JWT refresh token oturumunu temsil eder.
//
// Access token kısa ömürlü (15dk) bir JWT'dir — DB'ye gitmeden doğrulanır.
// Refresh token uzun ömürlü (7 gün) ve DB'de saklanır. Bu sayede:
//   - Çalınan token iptal edilebilir (revoke)
//   - Hesap deaktive edildiğinde tüm oturumlar tek seferde silinebilir
//   - Logout'ta sadece ilgili oturum düşürülür
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"` // API'ye gönderilmez
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
