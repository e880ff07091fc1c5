package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoriteRepository stores a user's favorite-offer set. Idempotence is
// pushed down to the storage layer: the composite primary key plus
// ON CONFLICT DO NOTHING means two racing adds cannot produce a duplicate.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID string, offerID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (user_id, offer_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, offer_id) DO NOTHING`,
		userID, offerID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove deletes the membership if present; removing a non-member is a no-op.
func (r *FavoriteRepository) Remove(ctx context.Context, userID string, offerID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND offer_id = $2`,
		userID, offerID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListOfferIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT offer_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FavoriteRepository) Contains(ctx context.Context, userID string, offerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND offer_id = $2)`,
		userID, offerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}
