package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/firmenportal/database"
	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
)

// sqliteSEORepo, SEORepository interface'inin SQLite implementasyonu.
type sqliteSEORepo struct {
	db database.TxQuerier
}

// NewSQLiteSEORepo, constructor.
func NewSQLiteSEORepo(db database.TxQuerier) SEORepository {
	return &sqliteSEORepo{db: db}
}

func (r *sqliteSEORepo) GetByPath(ctx context.Context, path string) (*models.SEOMetadata, error) {
	query := `SELECT path, title, description, keywords, updated_at FROM seo_metadata WHERE path = ?`

	meta := &models.SEOMetadata{}
	err := r.db.QueryRowContext(ctx, query, path).Scan(
		&meta.Path, &meta.Title, &meta.Description, &meta.Keywords, &meta.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seo metadata by path: %w", err)
	}

	return meta, nil
}

func (r *sqliteSEORepo) List(ctx context.Context) ([]models.SEOMetadata, error) {
	query := `SELECT path, title, description, keywords, updated_at FROM seo_metadata ORDER BY path`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list seo metadata: %w", err)
	}
	defer rows.Close()

	items := []models.SEOMetadata{}
	for rows.Next() {
		var m models.SEOMetadata
		if err := rows.Scan(&m.Path, &m.Title, &m.Description, &m.Keywords, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan seo metadata row: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seo metadata rows: %w", err)
	}

	return items, nil
}

func (r *sqliteSEORepo) Upsert(ctx context.Context, meta *models.SEOMetadata) error {
	// ON CONFLICT — SQLite upsert. path PK olduğu için bir sayfa için
	// asla iki kayıt oluşamaz.
	query := `
		INSERT INTO seo_metadata (path, title, description, keywords, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			keywords = excluded.keywords,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		meta.Path, meta.Title, meta.Description, meta.Keywords,
	).Scan(&meta.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert seo metadata: %w", err)
	}

	return nil
}

func (r *sqliteSEORepo) Delete(ctx context.Context, path string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seo_metadata WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete seo metadata: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
