package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
	"github.com/akinalp/firmenportal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSEORepo, bellekte çalışan SEORepository implementasyonu.
type fakeSEORepo struct {
	mu      sync.Mutex
	entries map[string]*models.SEOMetadata
}

func newFakeSEORepo() *fakeSEORepo {
	return &fakeSEORepo{entries: make(map[string]*models.SEOMetadata)}
}

func (f *fakeSEORepo) GetByPath(ctx context.Context, path string) (*models.SEOMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.entries[path]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeSEORepo) List(ctx context.Context) ([]models.SEOMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.SEOMetadata, 0, len(f.entries))
	for _, m := range f.entries {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeSEORepo) Upsert(ctx context.Context, meta *models.SEOMetadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	meta.UpdatedAt = time.Now()
	cp := *meta
	f.entries[meta.Path] = &cp
	return nil
}

func (f *fakeSEORepo) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[path]; !ok {
		return pkg.ErrNotFound
	}
	delete(f.entries, path)
	return nil
}

func TestSEOLookupFromCache(t *testing.T) {
	repo := newFakeSEORepo()
	require.NoError(t, repo.Upsert(context.Background(), &models.SEOMetadata{
		Path:  "/leistungen",
		Title: "Unsere Leistungen",
	}))

	hub := realtime.NewHub()
	svc := NewSEOService(context.Background(), repo, hub)
	defer svc.Close()

	meta, err := svc.Lookup(context.Background(), "/leistungen")
	require.NoError(t, err)
	assert.Equal(t, "Unsere Leistungen", meta.Title)

	_, err = svc.Lookup(context.Background(), "/gibt-es-nicht")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestSEOUpsertRefreshesCache(t *testing.T) {
	repo := newFakeSEORepo()
	hub := realtime.NewHub()
	svc := NewSEOService(context.Background(), repo, hub)
	defer svc.Close()

	_, err := svc.Upsert(context.Background(), &models.UpsertSEORequest{
		Path:  "/kontakt",
		Title: "Kontakt",
	})
	require.NoError(t, err)

	// Cache hub sinyali ile kendini yeniler — eventual consistency.
	require.Eventually(t, func() bool {
		meta, err := svc.Lookup(context.Background(), "/kontakt")
		return err == nil && meta.Title == "Kontakt"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSEODeleteRefreshesCache(t *testing.T) {
	repo := newFakeSEORepo()
	require.NoError(t, repo.Upsert(context.Background(), &models.SEOMetadata{Path: "/alt", Title: "Alt"}))

	hub := realtime.NewHub()
	svc := NewSEOService(context.Background(), repo, hub)
	defer svc.Close()

	_, err := svc.Lookup(context.Background(), "/alt")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "/alt"))

	require.Eventually(t, func() bool {
		_, err := svc.Lookup(context.Background(), "/alt")
		return errors.Is(err, pkg.ErrNotFound)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSEOUpsertValidation(t *testing.T) {
	repo := newFakeSEORepo()
	hub := realtime.NewHub()
	svc := NewSEOService(context.Background(), repo, hub)
	defer svc.Close()

	_, err := svc.Upsert(context.Background(), &models.UpsertSEORequest{Path: "kein-slash"})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}
