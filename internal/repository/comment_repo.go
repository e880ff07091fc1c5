package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"six-cities-api/internal/model"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c model.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO comments (id, offer_id, author_id, text, rating, published_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.OfferID, c.AuthorID, c.Text, c.Rating, c.PublishedAt, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByOfferID(ctx context.Context, offerID string, limit int, offset int) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, offer_id, author_id, text, rating, published_at, created_at
		 FROM comments WHERE offer_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		offerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.OfferID, &c.AuthorID, &c.Text, &c.Rating, &c.PublishedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
