// Package middleware — RoleMiddleware, rol bazlı yetki kontrolü.
//
// AuthMiddleware'den SONRA çalışır — context'te taze profil mevcuttur.
// Rol kontrolü fail-closed'dur: context'te profil yoksa veya rol
// beklenen listede değilse request reddedilir. Tanınmayan/boş rol hiçbir
// kontrolden geçemez.
package middleware

import (
	"net/http"

	"github.com/akinalp/firmenportal/handlers"
	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
)

// RoleMiddleware, rol bazlı yetki zorunlu kılan middleware.
type RoleMiddleware struct{}

// NewRoleMiddleware, constructor.
func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

// Require, context'teki profilin rolü verilen listede değilse 403 döner.
//
// Kullanım:
//
//	authMw.Require(roleMw.Require(models.RoleAdmin)(http.HandlerFunc(h.List)))
func (m *RoleMiddleware) Require(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := r.Context().Value(handlers.UserContextKey).(*models.Profile)
			if !ok {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
				return
			}

			if !allowed[profile.Role] {
				pkg.ErrorWithMessage(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin, sadece admin rolüne izin veren kısayol.
func (m *RoleMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.Require(models.RoleAdmin)(next)
}

// RequireStaff, admin veya mitarbeiter rolüne izin veren kısayol.
func (m *RoleMiddleware) RequireStaff(next http.Handler) http.Handler {
	return m.Require(models.RoleAdmin, models.RoleMitarbeiter)(next)
}
