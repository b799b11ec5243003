package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"formbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// t0 is truncated to milliseconds, the resolution MongoDB keeps.
var t0 = time.Date(2025, 6, 1, 9, 30, 15, 123_000_000, time.UTC)

// runStoreSuite runs the behaviour every backend must share. newStore must
// return a store over an empty collection.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("EmptyCollection", func(t *testing.T) {
		s := newStore(t)
		subs, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)
		assert.NotNil(t, subs)
		assert.Empty(t, subs)
	})

	t.Run("SampleRoundTrip", func(t *testing.T) {
		s := newStore(t)
		sample := domain.SampleSubmission(t0)

		id, err := s.Insert(ctx, sample)
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		subs, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, id, subs[0].ID)
		assertSameFields(t, sample, subs[0])
	})

	t.Run("DistinctCompanies", func(t *testing.T) {
		s := newStore(t)
		want := []string{"Acme", "Globex", "Initech"}
		for _, company := range want {
			sub := domain.SampleSubmission(t0)
			sub.Company = company
			_, err := s.Insert(ctx, sub)
			require.NoError(t, err)
		}

		subs, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)
		require.Len(t, subs, 3)

		var got []string
		for _, sub := range subs {
			got = append(got, sub.Company)
		}
		assert.ElementsMatch(t, want, got)
	})

	t.Run("ReadIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		insertN(t, s, 5)

		first, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)
		second, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)

		require.Len(t, second, len(first))
		byID := make(map[string]domain.FormSubmission, len(first))
		for _, sub := range first {
			byID[sub.ID] = sub
		}
		for _, sub := range second {
			prev, ok := byID[sub.ID]
			require.True(t, ok, "id %s only seen on second read", sub.ID)
			assertSameFields(t, prev, sub)
		}
	})

	t.Run("DefaultCap", func(t *testing.T) {
		s := newStore(t)
		insertN(t, s, DefaultLimit+5)

		subs, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)
		assert.Len(t, subs, DefaultLimit)

		subs, err = s.Find(ctx, FindOptions{Limit: 100})
		require.NoError(t, err)
		assert.Len(t, subs, DefaultLimit+5)
	})

	t.Run("SkipReturnsNextPage", func(t *testing.T) {
		s := newStore(t)
		insertN(t, s, 7)

		first, err := s.Find(ctx, FindOptions{Limit: 5})
		require.NoError(t, err)
		rest, err := s.Find(ctx, FindOptions{Skip: 5, Limit: 5})
		require.NoError(t, err)
		beyond, err := s.Find(ctx, FindOptions{Skip: 50, Limit: 5})
		require.NoError(t, err)

		assert.Len(t, first, 5)
		assert.Len(t, rest, 2)
		assert.Empty(t, beyond)

		seen := map[string]bool{}
		for _, sub := range append(first, rest...) {
			assert.False(t, seen[sub.ID], "id %s returned twice", sub.ID)
			seen[sub.ID] = true
		}
	})

	t.Run("InsertWhilePagingLandsOnLaterPage", func(t *testing.T) {
		s := newStore(t)
		insertN(t, s, 7)

		first, err := s.Find(ctx, FindOptions{Limit: 5})
		require.NoError(t, err)

		late := domain.SampleSubmission(t0)
		late.Company = "Late Arrival"
		lateID, err := s.Insert(ctx, late)
		require.NoError(t, err)

		rest, err := s.Find(ctx, FindOptions{Skip: 5, Limit: 5})
		require.NoError(t, err)
		require.Len(t, rest, 3)
		assert.Equal(t, lateID, rest[2].ID)

		for _, a := range first {
			for _, b := range rest {
				assert.NotEqual(t, a.ID, b.ID)
			}
		}
	})

	t.Run("DuplicatesAccepted", func(t *testing.T) {
		s := newStore(t)
		sample := domain.SampleSubmission(t0)

		id1, err := s.Insert(ctx, sample)
		require.NoError(t, err)
		id2, err := s.Insert(ctx, sample)
		require.NoError(t, err)
		assert.NotEqual(t, id1, id2)

		subs, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)
		assert.Len(t, subs, 2)
	})

	t.Run("NoValidation", func(t *testing.T) {
		s := newStore(t)
		odd := domain.FormSubmission{Company: "", Email: "not-an-email", Phone: "call me", CreatedAt: t0}

		_, err := s.Insert(ctx, odd)
		require.NoError(t, err)

		subs, err := s.Find(ctx, FindOptions{})
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assertSameFields(t, odd, subs[0])
	})
}

func insertN(t *testing.T, s Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		sub := domain.SampleSubmission(t0.Add(time.Duration(i) * time.Second))
		sub.Company = fmt.Sprintf("Company %02d", i)
		_, err := s.Insert(context.Background(), sub)
		require.NoError(t, err)
	}
}

func assertSameFields(t *testing.T, want, got domain.FormSubmission) {
	t.Helper()
	assert.True(t, want.SameFields(got), "want %+v, got %+v", want, got)
}
