package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	svc      AdminService
	profiles *fakeProfileRepo
	sessions *fakeSessionRepo
	emails   *fakeEmailRepo
	notifier *fakeNotifier
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	profiles := newFakeProfileRepo()
	sessions := newFakeSessionRepo()
	emails := newFakeEmailRepo()
	notifier := &fakeNotifier{}
	txRunner := &fakeTxRunner{profiles: profiles, emails: emails}

	return &adminFixture{
		svc:      NewAdminService(profiles, sessions, emails, txRunner, notifier, &seqIDGen{n: 100}, "https://portal.example.com"),
		profiles: profiles,
		sessions: sessions,
		emails:   emails,
		notifier: notifier,
	}
}

func (fx *adminFixture) seedUser(t *testing.T, id string, role models.Role) {
	t.Helper()
	require.NoError(t, fx.profiles.Create(context.Background(), &models.Profile{
		ID:       id,
		Email:    id + "@example.com",
		Role:     role,
		IsActive: true,
	}))
}

func TestAdminListUsers(t *testing.T) {
	fx := newAdminFixture(t)
	fx.seedUser(t, "admin-1", models.RoleAdmin)
	fx.seedUser(t, "kunde-1", models.RoleKunde)

	users, err := fx.svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminUpdateUserRole(t *testing.T) {
	fx := newAdminFixture(t)
	fx.seedUser(t, "admin-1", models.RoleAdmin)
	fx.seedUser(t, "kunde-1", models.RoleKunde)

	role := "mitarbeiter"
	updated, err := fx.svc.UpdateUser(context.Background(), "admin-1", "kunde-1", &models.AdminUpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMitarbeiter, updated.Role)

	// Panel listeleri kendini yenileyebilsin diye profiles değişikliği duyurulur.
	assert.Contains(t, fx.notifier.all(), "profiles:update")
}

func TestAdminCannotDemoteSelf(t *testing.T) {
	fx := newAdminFixture(t)
	fx.seedUser(t, "admin-1", models.RoleAdmin)

	role := "kunde"
	_, err := fx.svc.UpdateUser(context.Background(), "admin-1", "admin-1", &models.AdminUpdateUserRequest{Role: &role})
	assert.True(t, errors.Is(err, pkg.ErrForbidden))

	// Rol değişmemiş olmalı.
	p, _ := fx.profiles.GetByID(context.Background(), "admin-1")
	assert.Equal(t, models.RoleAdmin, p.Role)
}

func TestAdminCannotDeactivateSelf(t *testing.T) {
	fx := newAdminFixture(t)
	fx.seedUser(t, "admin-1", models.RoleAdmin)

	inactive := false
	_, err := fx.svc.UpdateUser(context.Background(), "admin-1", "admin-1", &models.AdminUpdateUserRequest{IsActive: &inactive})
	assert.True(t, errors.Is(err, pkg.ErrForbidden))
}

func TestAdminDeactivateRevokesSessions(t *testing.T) {
	fx := newAdminFixture(t)
	fx.seedUser(t, "admin-1", models.RoleAdmin)
	fx.seedUser(t, "kunde-1", models.RoleKunde)

	for i := 0; i < 2; i++ {
		require.NoError(t, fx.sessions.Create(context.Background(), &models.Session{
			UserID:       "kunde-1",
			RefreshToken: "tok",
			ExpiresAt:    time.Now().Add(time.Hour),
		}))
	}
	require.Equal(t, 2, fx.sessions.countForUser("kunde-1"))

	inactive := false
	updated, err := fx.svc.UpdateUser(context.Background(), "admin-1", "kunde-1", &models.AdminUpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// Deaktivasyon anında etkili: açık oturumlar düşürülür.
	assert.Equal(t, 0, fx.sessions.countForUser("kunde-1"))
}

func TestAdminUpdateUserValidation(t *testing.T) {
	fx := newAdminFixture(t)
	fx.seedUser(t, "admin-1", models.RoleAdmin)
	fx.seedUser(t, "kunde-1", models.RoleKunde)

	t.Run("no fields", func(t *testing.T) {
		_, err := fx.svc.UpdateUser(context.Background(), "admin-1", "kunde-1", &models.AdminUpdateUserRequest{})
		assert.True(t, errors.Is(err, pkg.ErrBadRequest))
	})

	t.Run("unknown role", func(t *testing.T) {
		role := "superadmin"
		_, err := fx.svc.UpdateUser(context.Background(), "admin-1", "kunde-1", &models.AdminUpdateUserRequest{Role: &role})
		assert.True(t, errors.Is(err, pkg.ErrBadRequest))
	})

	t.Run("unknown target", func(t *testing.T) {
		role := "kunde"
		_, err := fx.svc.UpdateUser(context.Background(), "admin-1", "gibt-es-nicht", &models.AdminUpdateUserRequest{Role: &role})
		assert.True(t, errors.Is(err, pkg.ErrNotFound))
	})
}

func TestCreateAdminUser(t *testing.T) {
	fx := newAdminFixture(t)

	profile, err := fx.svc.CreateAdminUser(context.Background(), &models.CreateAdminUserRequest{
		Email:    "chef@firma.de",
		Password: "geheim123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, profile.Role)
	assert.True(t, profile.IsActive)
	assert.Empty(t, profile.PasswordHash)

	// Hoş geldin email'i aynı işlemde kuyruklanır.
	queued := fx.emails.queued()
	require.Len(t, queued, 1)
	assert.Equal(t, "chef@firma.de", queued[0].ToEmail)
	assert.Equal(t, models.EmailStatusPending, queued[0].Status)

	assert.Contains(t, fx.notifier.all(), "profiles:insert")
}

func TestCreateAdminUserAtomicity(t *testing.T) {
	fx := newAdminFixture(t)
	fx.emails.failEnqueue = errors.New("disk full")

	_, err := fx.svc.CreateAdminUser(context.Background(), &models.CreateAdminUserRequest{
		Email:    "chef@firma.de",
		Password: "geheim123",
	})
	require.Error(t, err)

	// Email kuyruklanamadıysa profil de OLUŞMAMALI.
	count, _ := fx.profiles.Count(context.Background())
	assert.Equal(t, 0, count)
	assert.Empty(t, fx.notifier.all())
}

func TestCreateAdminUserDuplicateEmail(t *testing.T) {
	fx := newAdminFixture(t)
	fx.seedUser(t, "bestehend", models.RoleKunde)

	_, err := fx.svc.CreateAdminUser(context.Background(), &models.CreateAdminUserRequest{
		Email:    "bestehend@example.com",
		Password: "geheim123",
	})
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))

	// Rollback: yarım kalan işlemden email kuyruğuna satır sızmamalı.
	assert.Empty(t, fx.emails.queued())
}

func TestSendWelcomeEmail(t *testing.T) {
	fx := newAdminFixture(t)

	err := fx.svc.SendWelcomeEmail(context.Background(), &models.WelcomeEmailRequest{
		Email: "neu@example.com",
		Role:  "mitarbeiter",
	})
	require.NoError(t, err)

	queued := fx.emails.queued()
	require.Len(t, queued, 1)
	assert.Equal(t, "neu@example.com", queued[0].ToEmail)
	assert.NotEmpty(t, queued[0].Subject)
	assert.NotEmpty(t, queued[0].Text)
}

func TestSendWelcomeEmailValidation(t *testing.T) {
	fx := newAdminFixture(t)

	err := fx.svc.SendWelcomeEmail(context.Background(), &models.WelcomeEmailRequest{
		Email: "neu@example.com",
		Role:  "superadmin",
	})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
	assert.Empty(t, fx.emails.queued())
}
