// Package handlers, HTTP endpoint'lerini barındırır.
//
// Handler'lar sadece HTTP concern'leriyle ilgilenir: request parse,
// service çağrısı, response yazımı. İş kuralları service katmanındadır.
package handlers

import (
	"net/http"

	"github.com/akinalp/firmenportal/models"
)

// contextKey, context.WithValue için özel tip.
// string yerine özel tip kullanılır — başka paketlerin key'leriyle
// çakışma ihtimali ortadan kalkar.
type contextKey string

// UserContextKey, AuthMiddleware'in context'e koyduğu profil için key.
// Middleware her request'te profili DB'den taze okur — rol değişikliği
// veya deaktivasyon bir sonraki request'te anında etkili olur.
const UserContextKey contextKey = "user"

// userFromContext, middleware'in context'e koyduğu profili döner.
// Middleware zincirinden geçmemiş bir request'te ok=false döner.
func userFromContext(r *http.Request) (*models.Profile, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.Profile)
	return user, ok
}
