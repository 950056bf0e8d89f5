package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/clubreviewapp/clubreview-server/internal/store"
)

func TestAddFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "josh")
	c := mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club")

	if err := s.AddFavorite(ctx, "user-1", "pppjo"); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}

	count, err := s.CountFavorites(ctx, c.ID)
	if err != nil {
		t.Fatalf("CountFavorites: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1", count)
	}
}

func TestAddFavorite_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "josh")
	c := mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club")

	for i := 0; i < 3; i++ {
		if err := s.AddFavorite(ctx, "user-1", "pppjo"); err != nil {
			t.Fatalf("AddFavorite #%d: %v", i, err)
		}
	}

	count, err := s.CountFavorites(ctx, c.ID)
	if err != nil {
		t.Fatalf("CountFavorites: %v", err)
	}
	if count != 1 {
		t.Errorf("count after repeats: got %d, want 1", count)
	}
}

func TestAddFavorite_ExactCodeMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "josh")
	mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club")

	// Favoriting matches the code exactly, unlike club lookups.
	err := s.AddFavorite(ctx, "user-1", "PPPJO")
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrNotFound.Code {
		t.Errorf("expected not found for wrong-case code, got %v", err)
	}
}

func TestAddFavorite_UnknownClub(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "josh")

	err := s.AddFavorite(ctx, "user-1", "nope")
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrNotFound.Code {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCountFavorites_MultipleUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club")
	mustCreateUser(t, s, "user-1", "a")
	mustCreateUser(t, s, "user-2", "b")
	mustCreateUser(t, s, "user-3", "c")

	for _, userID := range []string{"user-1", "user-2", "user-3"} {
		if err := s.AddFavorite(ctx, userID, "pppjo"); err != nil {
			t.Fatalf("AddFavorite %s: %v", userID, err)
		}
	}

	count, err := s.CountFavorites(ctx, c.ID)
	if err != nil {
		t.Fatalf("CountFavorites: %v", err)
	}
	if count != 3 {
		t.Errorf("count: got %d, want 3", count)
	}

	// The club payload reflects the count.
	got, err := s.GetClubByCode(ctx, "pppjo")
	if err != nil {
		t.Fatalf("GetClubByCode: %v", err)
	}
	if got.FavoriteCount != 3 {
		t.Errorf("FavoriteCount: got %d, want 3", got.FavoriteCount)
	}
}
