package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"six-cities-api/internal/model"
)

type fakeOfferStore struct {
	mu     sync.Mutex
	offers map[string]model.Offer
}

func newFakeOfferStore(offers ...model.Offer) *fakeOfferStore {
	byID := make(map[string]model.Offer, len(offers))
	for _, o := range offers {
		byID[o.ID] = o
	}
	return &fakeOfferStore{offers: byID}
}

func (f *fakeOfferStore) Create(_ context.Context, o model.Offer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offers[o.ID] = o
	return nil
}

func (f *fakeOfferStore) FindByID(_ context.Context, id string) (model.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[id]
	if !ok {
		return model.Offer{}, model.ErrOfferNotFound
	}
	return o, nil
}

func (f *fakeOfferStore) FindAny(_ context.Context, limit, offset int) ([]model.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]model.Offer, 0, len(f.offers))
	for _, o := range f.offers {
		all = append(all, o)
	}
	return all, nil
}

func (f *fakeOfferStore) FindPremiumByCity(_ context.Context, city string, limit, offset int) ([]model.Offer, error) {
	return nil, nil
}

func (f *fakeOfferStore) UpdateByID(_ context.Context, o model.Offer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.offers[o.ID]; !ok {
		return model.ErrOfferNotFound
	}
	f.offers[o.ID] = o
	return nil
}

func (f *fakeOfferStore) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.offers[id]; !ok {
		return model.ErrOfferNotFound
	}
	delete(f.offers, id)
	return nil
}

func (f *fakeOfferStore) Exists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.offers[id]
	return ok, nil
}

func validOfferPayload() model.OfferPayload {
	return model.OfferPayload{
		Title:       "Sunny loft near the embankment",
		Description: "Top floor, tall windows, five minutes from the center.",
		City:        model.CityMoscow,
		HousingType: model.HousingApartment,
		RoomCount:   2,
		GuestCount:  3,
		Cost:        12000,
	}
}

func TestOfferService_Ownership(t *testing.T) {
	ctx := context.Background()
	owned := model.Offer{ID: "offer-1", Title: "Quiet rooms off the square", AuthorID: "owner"}

	t.Run("only the author may update", func(t *testing.T) {
		store := newFakeOfferStore(owned)
		svc := NewOfferService(store, newFakeFavoriteSet())

		_, err := svc.Update(ctx, "offer-1", "intruder", validOfferPayload())
		assert.ErrorIs(t, err, model.ErrForbidden)

		kept, findErr := store.FindByID(ctx, "offer-1")
		require.NoError(t, findErr)
		assert.Equal(t, "Quiet rooms off the square", kept.Title)

		updated, err := svc.Update(ctx, "offer-1", "owner", validOfferPayload())
		require.NoError(t, err)
		assert.Equal(t, "Sunny loft near the embankment", updated.Title)
	})

	t.Run("only the author may delete", func(t *testing.T) {
		store := newFakeOfferStore(owned)
		svc := NewOfferService(store, newFakeFavoriteSet())

		err := svc.Delete(ctx, "offer-1", "intruder")
		assert.ErrorIs(t, err, model.ErrForbidden)

		exists, existsErr := store.Exists(ctx, "offer-1")
		require.NoError(t, existsErr)
		assert.True(t, exists, "offer must survive a non-author delete")

		require.NoError(t, svc.Delete(ctx, "offer-1", "owner"))
		exists, existsErr = store.Exists(ctx, "offer-1")
		require.NoError(t, existsErr)
		assert.False(t, exists)
	})

	t.Run("missing offer is not-found, not forbidden", func(t *testing.T) {
		svc := NewOfferService(newFakeOfferStore(), newFakeFavoriteSet())

		err := svc.Delete(ctx, "offer-gone", "anyone")
		assert.ErrorIs(t, err, model.ErrOfferNotFound)
	})
}
