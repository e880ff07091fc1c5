package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"six-cities-api/internal/model"
)

const (
	DefaultOffersLimit = 60
	MaxOffersLimit     = 100
)

type offerStore interface {
	Create(ctx context.Context, o model.Offer) error
	FindByID(ctx context.Context, id string) (model.Offer, error)
	FindAny(ctx context.Context, limit int, offset int) ([]model.Offer, error)
	FindPremiumByCity(ctx context.Context, city string, limit int, offset int) ([]model.Offer, error)
	UpdateByID(ctx context.Context, o model.Offer) error
	DeleteByID(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type OfferService struct {
	offers    offerStore
	favorites favoriteSet
}

func NewOfferService(offers offerStore, favorites favoriteSet) *OfferService {
	return &OfferService{offers: offers, favorites: favorites}
}

// Create saves a new offer with zeroed aggregates. A payload carrying
// isFavourite also puts the fresh offer into the author's favorite set.
func (s *OfferService) Create(ctx context.Context, authorID string, payload model.OfferPayload) (model.Offer, error) {
	now := time.Now().UTC()
	offer := model.Offer{
		ID:          uuid.NewString(),
		Title:       payload.Title,
		Description: payload.Description,
		PublishedAt: payload.PublishedAt,
		City:        payload.City,
		PreviewURL:  payload.PreviewURL,
		ImageURLs:   payload.ImageURLs,
		IsPremium:   payload.IsPremium,
		HousingType: payload.HousingType,
		RoomCount:   payload.RoomCount,
		GuestCount:  payload.GuestCount,
		Cost:        payload.Cost,
		Facilities:  payload.Facilities,
		AuthorID:    authorID,
		Coordinates: payload.Coordinates,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if offer.PublishedAt.IsZero() {
		offer.PublishedAt = now
	}
	if offer.ImageURLs == nil {
		offer.ImageURLs = []string{}
	}
	if offer.Facilities == nil {
		offer.Facilities = []string{}
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		return model.Offer{}, err
	}
	slog.Info("offer created", "offer_id", offer.ID, "author_id", authorID)

	if payload.IsFavourite {
		if err := s.favorites.Add(ctx, authorID, offer.ID); err != nil {
			return model.Offer{}, err
		}
		offer.IsFavourite = true
	}

	return offer, nil
}

// Get returns one offer, flagged isFavourite for the viewer when one is
// known. viewerID may be empty for anonymous requests.
func (s *OfferService) Get(ctx context.Context, id string, viewerID string) (model.Offer, error) {
	offer, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return model.Offer{}, err
	}

	if viewerID != "" {
		isFavourite, err := s.favorites.Contains(ctx, viewerID, offer.ID)
		if err != nil {
			return model.Offer{}, err
		}
		offer.IsFavourite = isFavourite
	}

	return offer, nil
}

func (s *OfferService) List(ctx context.Context, limit int, offset int, viewerID string) ([]model.Offer, error) {
	limit = clampLimit(limit, DefaultOffersLimit)

	offers, err := s.offers.FindAny(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return s.flagFavourites(ctx, offers, viewerID)
}

func (s *OfferService) ListPremiumByCity(ctx context.Context, city string, limit int, offset int, viewerID string) ([]model.Offer, error) {
	limit = clampLimit(limit, DefaultOffersLimit)

	offers, err := s.offers.FindPremiumByCity(ctx, city, limit, offset)
	if err != nil {
		return nil, err
	}

	return s.flagFavourites(ctx, offers, viewerID)
}

// Update replaces the offer document. Only the author may edit an offer;
// anyone else gets ErrForbidden regardless of the payload.
func (s *OfferService) Update(ctx context.Context, id string, viewerID string, payload model.OfferPayload) (model.Offer, error) {
	offer, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return model.Offer{}, err
	}
	if offer.AuthorID != viewerID {
		return model.Offer{}, model.ErrForbidden
	}

	offer.Title = payload.Title
	offer.Description = payload.Description
	offer.City = payload.City
	offer.PreviewURL = payload.PreviewURL
	offer.ImageURLs = payload.ImageURLs
	offer.IsPremium = payload.IsPremium
	offer.HousingType = payload.HousingType
	offer.RoomCount = payload.RoomCount
	offer.GuestCount = payload.GuestCount
	offer.Cost = payload.Cost
	offer.Facilities = payload.Facilities
	offer.Coordinates = payload.Coordinates
	if !payload.PublishedAt.IsZero() {
		offer.PublishedAt = payload.PublishedAt
	}

	if err := s.offers.UpdateByID(ctx, offer); err != nil {
		return model.Offer{}, err
	}

	return offer, nil
}

// Delete removes the offer after the same author check Update makes.
func (s *OfferService) Delete(ctx context.Context, id string, viewerID string) error {
	offer, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if offer.AuthorID != viewerID {
		return model.ErrForbidden
	}
	return s.offers.DeleteByID(ctx, offer.ID)
}

func (s *OfferService) Exists(ctx context.Context, id string) (bool, error) {
	return s.offers.Exists(ctx, id)
}

func (s *OfferService) flagFavourites(ctx context.Context, offers []model.Offer, viewerID string) ([]model.Offer, error) {
	if viewerID == "" || len(offers) == 0 {
		return offers, nil
	}

	ids, err := s.favorites.ListOfferIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}

	for i := range offers {
		_, offers[i].IsFavourite = members[offers[i].ID]
	}

	return offers, nil
}

func clampLimit(limit int, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxOffersLimit {
		return MaxOffersLimit
	}
	return limit
}
