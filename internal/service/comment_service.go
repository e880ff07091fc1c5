package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"six-cities-api/internal/model"
)

const DefaultCommentsLimit = 50

type commentStore interface {
	Create(ctx context.Context, c model.Comment) error
	FindByOfferID(ctx context.Context, offerID string, limit int, offset int) ([]model.Comment, error)
}

type ratingAggregator interface {
	Exists(ctx context.Context, id string) (bool, error)
	ApplyCommentRating(ctx context.Context, offerID string, rating int) error
}

type CommentService struct {
	comments commentStore
	offers   ratingAggregator
}

func NewCommentService(comments commentStore, offers ratingAggregator) *CommentService {
	return &CommentService{comments: comments, offers: offers}
}

// Create saves the comment and then applies its rating to the offer's
// running aggregates. The comment must be durable before the aggregate is
// touched; there is no cross-entity transaction, so a failed aggregate
// update leaves the comment in place and surfaces as an error.
func (s *CommentService) Create(ctx context.Context, authorID string, req model.CreateCommentRequest) (model.Comment, error) {
	exists, err := s.offers.Exists(ctx, req.OfferID)
	if err != nil {
		return model.Comment{}, err
	}
	if !exists {
		return model.Comment{}, model.ErrOfferNotFound
	}

	now := time.Now().UTC()
	comment := model.Comment{
		ID:          uuid.NewString(),
		OfferID:     req.OfferID,
		AuthorID:    authorID,
		Text:        req.Text,
		Rating:      req.Rating,
		PublishedAt: req.PublishedAt,
		CreatedAt:   now,
	}
	if comment.PublishedAt.IsZero() {
		comment.PublishedAt = now
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return model.Comment{}, err
	}

	if err := s.offers.ApplyCommentRating(ctx, comment.OfferID, comment.Rating); err != nil {
		// The comment row exists without being reflected in the aggregate.
		slog.Error("comment saved but aggregate update failed",
			"comment_id", comment.ID, "offer_id", comment.OfferID, "error", err)
		return model.Comment{}, fmt.Errorf("update offer aggregate: %w", err)
	}

	return comment, nil
}

func (s *CommentService) ListByOffer(ctx context.Context, offerID string, limit int, offset int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = DefaultCommentsLimit
	}
	return s.comments.FindByOfferID(ctx, offerID, limit, offset)
}
