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

// sqliteMediaRepo, MediaRepository interface'inin SQLite implementasyonu.
type sqliteMediaRepo struct {
	db database.TxQuerier
}

// NewSQLiteMediaRepo, constructor.
func NewSQLiteMediaRepo(db database.TxQuerier) MediaRepository {
	return &sqliteMediaRepo{db: db}
}

func (r *sqliteMediaRepo) List(ctx context.Context, filter models.MediaFilter) ([]models.Media, error) {
	// Filtreler dinamik WHERE olarak eklenir — her zaman parametre ile,
	// string birleştirme ile değer gömülmez (SQL injection).
	query := `SELECT id, title, url, type, page_context, description, created_at FROM media`
	var conditions []string
	var args []any

	if filter.Type != nil {
		conditions = append(conditions, `type = ?`)
		args = append(args, *filter.Type)
	}
	if filter.PageContext != nil {
		conditions = append(conditions, `page_context = ?`)
		args = append(args, *filter.PageContext)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	items := []models.Media{}
	for rows.Next() {
		var m models.Media
		var pageContext, description sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Title, &m.URL, &m.Type, &pageContext, &description, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		if pageContext.Valid {
			m.PageContext = &pageContext.String
		}
		if description.Valid {
			m.Description = &description.String
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media rows: %w", err)
	}

	return items, nil
}

func (r *sqliteMediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	query := `SELECT id, title, url, type, page_context, description, created_at FROM media WHERE id = ?`

	m := &models.Media{}
	var pageContext, description sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.URL, &m.Type, &pageContext, &description, &m.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media by id: %w", err)
	}

	if pageContext.Valid {
		m.PageContext = &pageContext.String
	}
	if description.Valid {
		m.Description = &description.String
	}

	return m, nil
}

func (r *sqliteMediaRepo) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, title, url, type, page_context, description)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		media.ID,
		media.Title,
		media.URL,
		media.Type,
		media.PageContext,
		media.Description,
	).Scan(&media.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}

	return nil
}

func (r *sqliteMediaRepo) Update(ctx context.Context, media *models.Media) error {
	query := `
		UPDATE media SET title = ?, url = ?, type = ?, page_context = ?, description = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		media.Title, media.URL, media.Type, media.PageContext, media.Description, media.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update media: %w", err)
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

func (r *sqliteMediaRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
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
