package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/realtime"
)

// fakeProfileRepo, bellekte çalışan ProfileRepository implementasyonu.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile

	// failCreate: set edilirse Create bu hatayı döner (atomiklik testleri).
	failCreate error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return f.failCreate
	}
	for _, p := range f.profiles {
		if p.Email == profile.Email {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	cp := *profile
	f.profiles[profile.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeProfileRepo) GetAll(ctx context.Context) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfileRepo) UpdateNames(ctx context.Context, id, firstName, lastName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[id]
	if !ok {
		return pkg.ErrNotFound
	}
	p.FirstName = firstName
	p.LastName = lastName
	return nil
}

func (f *fakeProfileRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[id]
	if !ok {
		return pkg.ErrNotFound
	}
	p.Role = role
	return nil
}

func (f *fakeProfileRepo) UpdateActive(ctx context.Context, id string, isActive bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[id]
	if !ok {
		return pkg.ErrNotFound
	}
	p.IsActive = isActive
	return nil
}

func (f *fakeProfileRepo) UpdatePassword(ctx context.Context, id, newPasswordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[id]
	if !ok {
		return pkg.ErrNotFound
	}
	p.PasswordHash = newPasswordHash
	return nil
}

func (f *fakeProfileRepo) TouchLastSignIn(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[id]
	if !ok {
		return pkg.ErrNotFound
	}
	now := time.Now()
	p.LastSignInAt = &now
	return nil
}

func (f *fakeProfileRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.profiles), nil
}

// fakeSessionRepo, bellekte çalışan SessionRepository implementasyonu.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	session.ID = fmt.Sprintf("sess-%d", f.nextID)
	session.CreatedAt = time.Now()
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetByRefreshToken(ctx context.Context, token string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.RefreshToken == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (f *fakeSessionRepo) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for id, s := range f.sessions {
		if now.After(s.ExpiresAt) {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) countForUser(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, s := range f.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}

// fakeEmailRepo, bellekte çalışan EmailQueueRepository implementasyonu.
type fakeEmailRepo struct {
	mu       sync.Mutex
	messages []models.EmailMessage

	failEnqueue error
}

func newFakeEmailRepo() *fakeEmailRepo {
	return &fakeEmailRepo{}
}

func (f *fakeEmailRepo) Enqueue(ctx context.Context, msg *models.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failEnqueue != nil {
		return f.failEnqueue
	}
	msg.Status = models.EmailStatusPending
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeEmailRepo) NextPending(ctx context.Context, limit int) ([]models.EmailMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.EmailMessage
	for _, m := range f.messages {
		if m.Status == models.EmailStatusPending {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeEmailRepo) MarkSent(ctx context.Context, id string) error {
	return f.mark(id, models.EmailStatusSent)
}

func (f *fakeEmailRepo) MarkFailed(ctx context.Context, id string) error {
	return f.mark(id, models.EmailStatusFailed)
}

func (f *fakeEmailRepo) mark(id string, status models.EmailStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Status = status
			return nil
		}
	}
	return pkg.ErrNotFound
}

func (f *fakeEmailRepo) queued() []models.EmailMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.EmailMessage, len(f.messages))
	copy(out, f.messages)
	return out
}

// fakeTxRunner, atomikliği bellekte simüle eder: fn hata dönerse fn içinde
// yapılan profil/email yazımları geri alınır (state restore).
type fakeTxRunner struct {
	profiles *fakeProfileRepo
	emails   *fakeEmailRepo
}

func (f *fakeTxRunner) InTx(ctx context.Context, fn func(repos TxRepos) error) error {
	f.profiles.mu.Lock()
	savedProfiles := make(map[string]*models.Profile, len(f.profiles.profiles))
	for id, p := range f.profiles.profiles {
		cp := *p
		savedProfiles[id] = &cp
	}
	f.profiles.mu.Unlock()

	f.emails.mu.Lock()
	savedMessages := make([]models.EmailMessage, len(f.emails.messages))
	copy(savedMessages, f.emails.messages)
	f.emails.mu.Unlock()

	err := fn(TxRepos{Profiles: f.profiles, Emails: f.emails})
	if err != nil {
		// Rollback
		f.profiles.mu.Lock()
		f.profiles.profiles = savedProfiles
		f.profiles.mu.Unlock()

		f.emails.mu.Lock()
		f.emails.messages = savedMessages
		f.emails.mu.Unlock()
	}
	return err
}

// fakeNotifier, NotifyChange çağrılarını kaydeder.
type fakeNotifier struct {
	mu      sync.Mutex
	changes []string
}

func (f *fakeNotifier) NotifyChange(table string, action realtime.ChangeAction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, table+":"+string(action))
}

func (f *fakeNotifier) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.changes))
	copy(out, f.changes)
	return out
}

// seqIDGen, deterministik ID üretir.
type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// fakeSender, gönderilen email'leri kaydeder.
type fakeSender struct {
	mu   sync.Mutex
	sent []string

	failFor map[string]bool
}

func (f *fakeSender) Send(ctx context.Context, toEmail, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[toEmail] {
		return fmt.Errorf("smtp rejected")
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func (f *fakeSender) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}
