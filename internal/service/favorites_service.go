package service

import (
	"context"
	"errors"

	"six-cities-api/internal/model"
)

type favoriteSet interface {
	Add(ctx context.Context, userID string, offerID string) error
	Remove(ctx context.Context, userID string, offerID string) error
	ListOfferIDs(ctx context.Context, userID string) ([]string, error)
	Contains(ctx context.Context, userID string, offerID string) (bool, error)
}

type offerFinder interface {
	FindByID(ctx context.Context, id string) (model.Offer, error)
}

// FavoritesService mutates a user's favorite-offer set. Both mutations are
// idempotent; membership is enforced by the storage layer, so two racing
// adds of the same offer still end up as one member.
type FavoritesService struct {
	favorites favoriteSet
	offers    offerFinder
}

func NewFavoritesService(favorites favoriteSet, offers offerFinder) *FavoritesService {
	return &FavoritesService{favorites: favorites, offers: offers}
}

// Add is a no-op when the offer is already a member. Offer existence is the
// caller's responsibility (route-level existence middleware).
func (s *FavoritesService) Add(ctx context.Context, userID string, offerID string) error {
	return s.favorites.Add(ctx, userID, offerID)
}

// Remove is a no-op when the offer is not a member.
func (s *FavoritesService) Remove(ctx context.Context, userID string, offerID string) error {
	return s.favorites.Remove(ctx, userID, offerID)
}

// List returns the user's favorite offers hydrated from the offer store,
// each flagged isFavourite. Ids whose offer has meanwhile been deleted are
// skipped. An empty set yields an empty slice, never an error.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]model.Offer, error) {
	ids, err := s.favorites.ListOfferIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	offers := make([]model.Offer, 0, len(ids))
	for _, id := range ids {
		offer, err := s.offers.FindByID(ctx, id)
		if errors.Is(err, model.ErrOfferNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		offer.IsFavourite = true
		offers = append(offers, offer)
	}

	return offers, nil
}
