package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// Token'da ROL TAŞINMAZ — bilinçli bir karar: rol oturum sırasında
// değişebilir (admin bir kullanıcıyı düşürebilir) ve 15 dakikalık token
// eski rolü taşımaya devam ederdi. Bu yüzden auth middleware her istekte
// profili DB'den taze okur; token sadece kimliği (user_id) kanıtlar.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, realtime, middleware) tarafından kullanılır — her katman
// models'e bağımlı olabilir, circular dependency oluşmaz.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
