// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware zincir şeklinde çalışır: Auth → Role → Handler.
// Her middleware kendi kontrolünü yapar, geçerse next'i çağırır;
// geçmezse response'u kendisi yazar ve zincir orada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/firmenportal/handlers"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/repository"
	"github.com/akinalp/firmenportal/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
//
// Token sadece kimliği (user ID) taşır, rolü TAŞIMAZ — rol her request'te
// DB'den taze okunur. Böylece admin bir kullanıcının rolünü düşürdüğünde
// veya hesabı kapattığında değişiklik bir sonraki request'te etkili olur,
// token süresinin dolması beklenmez.
type AuthMiddleware struct {
	authService services.AuthService
	profileRepo repository.ProfileRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, profileRepo repository.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		profileRepo: profileRepo,
	}
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa, geçersizse veya hesap deaktiveyse → 401 Unauthorized.
//
// HTTP header formatı: Authorization: Bearer <token>
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// Token geçerli ama kullanıcı silinmiş veya deaktive edilmiş olabilir.
		profile, err := m.profileRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
			return
		}

		if !profile.IsActive {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "account is deactivated")
			return
		}

		// Password hash context'te taşınmaz.
		profile.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
