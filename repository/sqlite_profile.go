package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/firmenportal/database"
	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
)

// profileColumns, tüm SELECT sorgularında kullanılan kolon listesi.
// Scan sırası scanProfile ile birebir eşleşmeli.
const profileColumns = `id, email, password_hash, role, first_name, last_name, is_active, last_sign_in_at, created_at, updated_at`

// sqliteProfileRepo, ProfileRepository interface'inin SQLite implementasyonu.
type sqliteProfileRepo struct {
	db database.TxQuerier
}

// NewSQLiteProfileRepo, constructor.
// Interface döner (concrete struct değil) — Dependency Inversion.
func NewSQLiteProfileRepo(db database.TxQuerier) ProfileRepository {
	return &sqliteProfileRepo{db: db}
}

func (r *sqliteProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, role, first_name, last_name, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at, updated_at`

	// ID service katmanında üretilir (uuid) — RETURNING ile timestamp'ler okunur.
	err := r.db.QueryRowContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.PasswordHash,
		profile.Role,
		profile.FirstName,
		profile.LastName,
		profile.IsActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already in use", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *sqliteProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return profile, nil
}

func (r *sqliteProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = ?`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}

	return profile, nil
}

func (r *sqliteProfileRepo) GetAll(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, nil
}

func (r *sqliteProfileRepo) UpdateNames(ctx context.Context, id, firstName, lastName string) error {
	query := `UPDATE profiles SET first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.execExpectingRow(ctx, query, firstName, lastName, id)
}

func (r *sqliteProfileRepo) UpdateRole(ctx context.Context, id string, role models.Role) error {
	// Geçersiz rolün DB'ye sızmaması için son savunma hattı —
	// normalde service katmanı zaten doğrulamış olmalı.
	if !role.Valid() {
		return fmt.Errorf("%w: invalid role %q", pkg.ErrBadRequest, role)
	}

	query := `UPDATE profiles SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.execExpectingRow(ctx, query, role, id)
}

func (r *sqliteProfileRepo) UpdateActive(ctx context.Context, id string, isActive bool) error {
	query := `UPDATE profiles SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.execExpectingRow(ctx, query, isActive, id)
}

func (r *sqliteProfileRepo) UpdatePassword(ctx context.Context, id, newPasswordHash string) error {
	query := `UPDATE profiles SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.execExpectingRow(ctx, query, newPasswordHash, id)
}

func (r *sqliteProfileRepo) TouchLastSignIn(ctx context.Context, id string) error {
	query := `UPDATE profiles SET last_sign_in_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.execExpectingRow(ctx, query, id)
}

func (r *sqliteProfileRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// execExpectingRow, UPDATE çalıştırır ve en az bir satırın etkilendiğini doğrular.
// 0 satır → hedef profil yok → ErrNotFound.
func (r *sqliteProfileRepo) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
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

// rowScanner, *sql.Row ve *sql.Rows'un ortak Scan imzası.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	p := &models.Profile{}
	var lastSignIn sql.NullTime
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.FirstName, &p.LastName,
		&p.IsActive, &lastSignIn, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastSignIn.Valid {
		t := lastSignIn.Time
		p.LastSignInAt = &t
	}

	// DB'den gelen tanınmayan rol → unset muamelesi (fail-closed).
	if !p.Role.Valid() {
		p.Role = models.RoleUnset
	}

	return p, nil
}

func scanProfileRow(rows *sql.Rows) (*models.Profile, error) {
	return scanProfile(rows)
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını kontrol eder.
func isUniqueViolation(err error) bool {
	return err != nil && !errors.Is(err, sql.ErrNoRows) &&
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
