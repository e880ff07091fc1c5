package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"six-cities-api/internal/model"
)

// TokenRepository persists issued bearer tokens. A row present means the
// session is live; removing the row is the revocation.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Save(ctx context.Context, token string, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tokens (token, user_id, created_at) VALUES ($1, $2, $3)`,
		token, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// GetUserID returns the owner of a live token. ErrTokenRevoked covers both
// "never issued" and "removed" — callers cannot tell the difference and must
// not need to.
func (r *TokenRepository) GetUserID(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM tokens WHERE token = $1`, token).Scan(&userID)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrTokenRevoked
	}
	if err != nil {
		return "", fmt.Errorf("lookup token: %w", err)
	}
	return userID, nil
}

// Remove deletes the token row if present. Removing an absent token is not
// an error.
func (r *TokenRepository) Remove(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (r *TokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tokens WHERE token = $1)`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check token exists: %w", err)
	}
	return exists, nil
}
