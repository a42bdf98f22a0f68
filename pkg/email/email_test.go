package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Rol bazlı subject seçimini ve login linkinin body'de yer aldığını doğrular.
func TestWelcomeMessage(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		wantSubject string
	}{
		{"admin rolü", "admin", "Willkommen im Firmenportal — Admin-Zugang"},
		{"mitarbeiter rolü", "mitarbeiter", "Willkommen im Firmenportal — Mitarbeiterbereich"},
		{"kunde rolü", "kunde", "Willkommen im Firmenportal"},
		{"bilinmeyen rol genel metne düşer", "superuser", "Willkommen im Firmenportal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := WelcomeMessage(tt.role, "https://portal.example.com")

			assert.Equal(t, tt.wantSubject, subject)
			assert.Contains(t, body, `href="https://portal.example.com/login"`)
			assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
		})
	}
}

func TestWelcomeMessageRoleSpecificIntro(t *testing.T) {
	_, adminBody := WelcomeMessage("admin", "https://portal.example.com")
	_, kundeBody := WelcomeMessage("kunde", "https://portal.example.com")

	assert.Contains(t, adminBody, "Administrator-Konto")
	assert.Contains(t, kundeBody, "Kundenkonto")
	assert.NotEqual(t, adminBody, kundeBody)
}
