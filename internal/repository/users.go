package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const userColumns = `id, username, password_hash, name, image_url, created_at`

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A taken username yields models.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash, name string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		username, passwordHash, name)
	u, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, models.ErrUserExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// GetByUsername returns nil, nil for an unknown username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetByID returns nil, nil for an unknown id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// UpdateProfile sets the display name and avatar URL.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, imageURL *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, image_url = $2 WHERE id = $3`, name, imageURL, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func scanUser(s rowScanner) (*models.User, error) {
	var (
		u     models.User
		image sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &image, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ImageURL = nullString(image)
	return &u, nil
}
