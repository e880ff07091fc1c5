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

const offerColumns = `id, title, description, published_at, city, preview_url, image_urls,
	is_premium, rating, housing_type, room_count, guest_count, cost, facilities,
	author_id, comments_count, comments_total_rating, latitude, longitude,
	created_at, updated_at`

type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

func (r *OfferRepository) Create(ctx context.Context, o model.Offer) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO offers (id, title, description, published_at, city, preview_url, image_urls,
		                     is_premium, rating, housing_type, room_count, guest_count, cost, facilities,
		                     author_id, comments_count, comments_total_rating, latitude, longitude,
		                     created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 0, 0, $16, $17, $18, $19)`,
		o.ID, o.Title, o.Description, o.PublishedAt, o.City, o.PreviewURL, o.ImageURLs,
		o.IsPremium, o.Rating, o.HousingType, o.RoomCount, o.GuestCount, o.Cost, o.Facilities,
		o.AuthorID, o.Coordinates.Latitude, o.Coordinates.Longitude, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (model.Offer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)

	o, err := scanOffer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Offer{}, model.ErrOfferNotFound
	}
	if err != nil {
		return model.Offer{}, fmt.Errorf("find offer by id: %w", err)
	}
	return o, nil
}

func (r *OfferRepository) FindAny(ctx context.Context, limit int, offset int) ([]model.Offer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM offers ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

func (r *OfferRepository) FindPremiumByCity(ctx context.Context, city string, limit int, offset int) ([]model.Offer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+offerColumns+` FROM offers
		 WHERE city = $1 AND is_premium
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		city, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list premium offers: %w", err)
	}
	defer rows.Close()

	return collectOffers(rows)
}

func (r *OfferRepository) UpdateByID(ctx context.Context, o model.Offer) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE offers SET title = $2, description = $3, published_at = $4, city = $5,
		        preview_url = $6, image_urls = $7, is_premium = $8, housing_type = $9,
		        room_count = $10, guest_count = $11, cost = $12, facilities = $13,
		        latitude = $14, longitude = $15, updated_at = $16
		 WHERE id = $1`,
		o.ID, o.Title, o.Description, o.PublishedAt, o.City,
		o.PreviewURL, o.ImageURLs, o.IsPremium, o.HousingType,
		o.RoomCount, o.GuestCount, o.Cost, o.Facilities,
		o.Coordinates.Latitude, o.Coordinates.Longitude, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM offers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check offer exists: %w", err)
	}
	return exists, nil
}

// ApplyCommentRating bumps both running aggregates in one statement so that
// concurrent comment creation on the same offer never loses an update.
func (r *OfferRepository) ApplyCommentRating(ctx context.Context, offerID string, rating int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE offers
		 SET comments_count = comments_count + 1,
		     comments_total_rating = comments_total_rating + $2,
		     updated_at = now()
		 WHERE id = $1`,
		offerID, rating)
	if err != nil {
		return fmt.Errorf("apply comment rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (model.Offer, error) {
	var o model.Offer
	err := row.Scan(&o.ID, &o.Title, &o.Description, &o.PublishedAt, &o.City, &o.PreviewURL, &o.ImageURLs,
		&o.IsPremium, &o.Rating, &o.HousingType, &o.RoomCount, &o.GuestCount, &o.Cost, &o.Facilities,
		&o.AuthorID, &o.CommentsCount, &o.CommentsTotalRating,
		&o.Coordinates.Latitude, &o.Coordinates.Longitude,
		&o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func collectOffers(rows pgx.Rows) ([]model.Offer, error) {
	offers := make([]model.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
