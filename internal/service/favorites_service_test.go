package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"six-cities-api/internal/model"
)

// memberKey mirrors the composite primary key of the favorites table.
type memberKey struct {
	userID  string
	offerID string
}

// fakeFavoriteSet reproduces the storage contract: a true set where a
// duplicate add and a missing remove are both silent no-ops.
type fakeFavoriteSet struct {
	mu      sync.Mutex
	members map[memberKey]struct{}
}

func newFakeFavoriteSet() *fakeFavoriteSet {
	return &fakeFavoriteSet{members: make(map[memberKey]struct{})}
}

func (f *fakeFavoriteSet) Add(_ context.Context, userID, offerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[memberKey{userID, offerID}] = struct{}{}
	return nil
}

func (f *fakeFavoriteSet) Remove(_ context.Context, userID, offerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, memberKey{userID, offerID})
	return nil
}

func (f *fakeFavoriteSet) ListOfferIDs(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0)
	for key := range f.members {
		if key.userID == userID {
			ids = append(ids, key.offerID)
		}
	}
	return ids, nil
}

func (f *fakeFavoriteSet) Contains(_ context.Context, userID, offerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[memberKey{userID, offerID}]
	return ok, nil
}

func (f *fakeFavoriteSet) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.members)
}

type fakeOfferFinder struct {
	offers map[string]model.Offer
}

func (f *fakeOfferFinder) FindByID(_ context.Context, id string) (model.Offer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return model.Offer{}, model.ErrOfferNotFound
	}
	return offer, nil
}

func TestFavoritesService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated add keeps a single member", func(t *testing.T) {
		set := newFakeFavoriteSet()
		svc := NewFavoritesService(set, &fakeOfferFinder{})

		require.NoError(t, svc.Add(ctx, "user-1", "offer-1"))
		require.NoError(t, svc.Add(ctx, "user-1", "offer-1"))
		require.NoError(t, svc.Add(ctx, "user-1", "offer-1"))

		assert.Equal(t, 1, set.size())
	})

	t.Run("same offer for two users are distinct members", func(t *testing.T) {
		set := newFakeFavoriteSet()
		svc := NewFavoritesService(set, &fakeOfferFinder{})

		require.NoError(t, svc.Add(ctx, "user-1", "offer-1"))
		require.NoError(t, svc.Add(ctx, "user-2", "offer-1"))

		assert.Equal(t, 2, set.size())
	})
}

func TestFavoritesService_Remove(t *testing.T) {
	ctx := context.Background()
	set := newFakeFavoriteSet()
	svc := NewFavoritesService(set, &fakeOfferFinder{})

	require.NoError(t, svc.Add(ctx, "user-1", "offer-1"))

	t.Run("removing a member empties the set", func(t *testing.T) {
		require.NoError(t, svc.Remove(ctx, "user-1", "offer-1"))
		assert.Equal(t, 0, set.size())
	})

	t.Run("removing a non-member is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Remove(ctx, "user-1", "offer-1"))
		require.NoError(t, svc.Remove(ctx, "user-9", "offer-9"))
		assert.Equal(t, 0, set.size())
	})
}

func TestFavoritesService_List(t *testing.T) {
	ctx := context.Background()
	set := newFakeFavoriteSet()
	finder := &fakeOfferFinder{offers: map[string]model.Offer{
		"offer-1": {ID: "offer-1", Title: "Loft by the river park"},
	}}
	svc := NewFavoritesService(set, finder)

	t.Run("empty set lists as empty slice", func(t *testing.T) {
		offers, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("members are hydrated and flagged", func(t *testing.T) {
		require.NoError(t, svc.Add(ctx, "user-1", "offer-1"))

		offers, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, "offer-1", offers[0].ID)
		assert.True(t, offers[0].IsFavourite)
	})

	t.Run("ids of deleted offers are skipped", func(t *testing.T) {
		require.NoError(t, svc.Add(ctx, "user-1", "offer-gone"))

		offers, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, offers, 1)
	})
}
