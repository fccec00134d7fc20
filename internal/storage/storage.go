package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Pratik-0309/thumbnail-generator/internal/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Storage struct {
	pool *pgxpool.Pool
	db   *sql.DB // For migrations
}

func NewStorage(dsn string) (*Storage, error) {
	const op = "storage.NewStorage"

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{pool: pool, db: db}, nil
}

func (s *Storage) Close() {
	s.db.Close()
	s.pool.Close()
}

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.CreateUser"

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password_hash, refresh_token, created_at FROM users WHERE email = $1`, email)
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, name, email, password_hash, refresh_token, created_at FROM users WHERE id = $1`, id)
}

func (s *Storage) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	const op = "storage.getUser"

	var u models.User
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RefreshToken, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

func (s *Storage) SetRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	const op = "storage.SetRefreshToken"

	_, err := s.pool.Exec(ctx, `UPDATE users SET refresh_token = $2 WHERE id = $1`, userID, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) CreateThumbnail(ctx context.Context, t *models.Thumbnail) error {
	const op = "storage.CreateThumbnail"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO thumbnails (id, user_id, title, style, aspect_ratio, color_scheme, user_prompt, prompt_used, text_overlay, image_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at, updated_at`,
		t.ID, t.UserID, t.Title, t.Style, t.AspectRatio, t.ColorScheme, t.UserPrompt, t.PromptUsed, t.TextOverlay, t.ImageURL, t.Status).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) GetThumbnail(ctx context.Context, id uuid.UUID) (*models.Thumbnail, error) {
	const op = "storage.GetThumbnail"

	var t models.Thumbnail
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, title, style, aspect_ratio, color_scheme, user_prompt, prompt_used, text_overlay, image_url, status, created_at, updated_at
		 FROM thumbnails WHERE id = $1`, id).
		Scan(&t.ID, &t.UserID, &t.Title, &t.Style, &t.AspectRatio, &t.ColorScheme, &t.UserPrompt,
			&t.PromptUsed, &t.TextOverlay, &t.ImageURL, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// ListThumbnails returns all records owned by a user, newest first.
func (s *Storage) ListThumbnails(ctx context.Context, userID uuid.UUID) ([]models.Thumbnail, error) {
	const op = "storage.ListThumbnails"

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, title, style, aspect_ratio, color_scheme, user_prompt, prompt_used, text_overlay, image_url, status, created_at, updated_at
		 FROM thumbnails WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	thumbnails := []models.Thumbnail{}
	for rows.Next() {
		var t models.Thumbnail
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Style, &t.AspectRatio, &t.ColorScheme, &t.UserPrompt,
			&t.PromptUsed, &t.TextOverlay, &t.ImageURL, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		thumbnails = append(thumbnails, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return thumbnails, nil
}

// UpdateThumbnailResult records the pipeline outcome for one generation.
func (s *Storage) UpdateThumbnailResult(ctx context.Context, id uuid.UUID, imageURL, status string) error {
	const op = "storage.UpdateThumbnailResult"

	_, err := s.pool.Exec(ctx,
		`UPDATE thumbnails SET image_url = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, imageURL, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) SetThumbnailStatus(ctx context.Context, id uuid.UUID, status string) error {
	const op = "storage.SetThumbnailStatus"

	_, err := s.pool.Exec(ctx, `UPDATE thumbnails SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) DeleteThumbnail(ctx context.Context, id uuid.UUID) error {
	const op = "storage.DeleteThumbnail"

	_, err := s.pool.Exec(ctx, `DELETE FROM thumbnails WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
