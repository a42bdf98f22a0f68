package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akinalp/firmenportal/database"
	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
)

// sqliteEmailQueueRepo, EmailQueueRepository interface'inin SQLite implementasyonu.
type sqliteEmailQueueRepo struct {
	db database.TxQuerier
}

// NewSQLiteEmailQueueRepo, constructor.
func NewSQLiteEmailQueueRepo(db database.TxQuerier) EmailQueueRepository {
	return &sqliteEmailQueueRepo{db: db}
}

func (r *sqliteEmailQueueRepo) Enqueue(ctx context.Context, msg *models.EmailMessage) error {
	query := `
		INSERT INTO email_queue (id, to_email, subject, text, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		msg.ID, msg.ToEmail, msg.Subject, msg.Text, models.EmailStatusPending,
	).Scan(&msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}

	msg.Status = models.EmailStatusPending
	return nil
}

func (r *sqliteEmailQueueRepo) NextPending(ctx context.Context, limit int) ([]models.EmailMessage, error) {
	query := `
		SELECT id, to_email, subject, text, status, created_at, sent_at
		FROM email_queue WHERE status = ? ORDER BY created_at, rowid LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, models.EmailStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending emails: %w", err)
	}
	defer rows.Close()

	msgs := []models.EmailMessage{}
	for rows.Next() {
		var m models.EmailMessage
		var sentAt sql.NullTime
		if err := rows.Scan(
			&m.ID, &m.ToEmail, &m.Subject, &m.Text, &m.Status, &m.CreatedAt, &sentAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan email row: %w", err)
		}
		if sentAt.Valid {
			t := sentAt.Time
			m.SentAt = &t
		}
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email rows: %w", err)
	}

	return msgs, nil
}

func (r *sqliteEmailQueueRepo) MarkSent(ctx context.Context, id string) error {
	query := `UPDATE email_queue SET status = ?, sent_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.mark(ctx, query, models.EmailStatusSent, id)
}

func (r *sqliteEmailQueueRepo) MarkFailed(ctx context.Context, id string) error {
	query := `UPDATE email_queue SET status = ? WHERE id = ?`
	return r.mark(ctx, query, models.EmailStatusFailed, id)
}

func (r *sqliteEmailQueueRepo) mark(ctx context.Context, query string, status models.EmailStatus, id string) error {
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update email status: %w", err)
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
