package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/clubreviewapp/clubreview-server/internal/domain"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

// mustCreateClub creates a club with tags or fails the test.
func mustCreateClub(t *testing.T, s *Store, id, code, name string, tags ...string) *domain.Club {
	t.Helper()
	c := domain.NewClub(id, code, name, "")
	if err := s.CreateClub(context.Background(), c, tags); err != nil {
		t.Fatalf("CreateClub %s: %v", code, err)
	}
	return c
}

func TestCreateAndGetClub(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := domain.NewClub("club-1", "pppjo", "Penn Pre-Professional Juggling Organization", "Juggling and pre-professional networking.")
	if err := s.CreateClub(ctx, c, []string{"Pre-Professional", "Athletics"}); err != nil {
		t.Fatalf("CreateClub: %v", err)
	}

	got, err := s.GetClubByCode(ctx, "pppjo")
	if err != nil {
		t.Fatalf("GetClubByCode: %v", err)
	}

	if got.ID != c.ID {
		t.Errorf("ID: got %q, want %q", got.ID, c.ID)
	}
	if got.Name != c.Name {
		t.Errorf("Name: got %q, want %q", got.Name, c.Name)
	}
	if got.Description != c.Description {
		t.Errorf("Description: got %q, want %q", got.Description, c.Description)
	}
	if want := []string{"Pre-Professional", "Athletics"}; !reflect.DeepEqual(got.TagNames, want) {
		t.Errorf("TagNames: got %v, want %v", got.TagNames, want)
	}
	if got.FavoriteCount != 0 {
		t.Errorf("FavoriteCount: got %d, want 0", got.FavoriteCount)
	}

	// Timestamps should round-trip through RFC3339Nano.
	if got.CreatedAt.Unix() != c.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, c.CreatedAt)
	}
}

func TestGetClubByCode_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club")

	for _, code := range []string{"pppjo", "PPPJO", "PpPjO"} {
		got, err := s.GetClubByCode(ctx, code)
		if err != nil {
			t.Fatalf("GetClubByCode(%q): %v", code, err)
		}
		if got.ID != "club-1" {
			t.Errorf("GetClubByCode(%q): got %q, want club-1", code, got.ID)
		}
	}
}

func TestGetClubByCodeExact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club")

	if _, err := s.GetClubByCodeExact(ctx, "pppjo"); err != nil {
		t.Fatalf("GetClubByCodeExact exact: %v", err)
	}

	_, err := s.GetClubByCodeExact(ctx, "PPPJO")
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrNotFound.Code {
		t.Errorf("GetClubByCodeExact with wrong case: got %v, want not found", err)
	}
}

func TestGetClubByCode_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetClubByCode(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *store.Error, got %T: %v", err, err)
	}
	if storeErr.Code != store.ErrNotFound.Code {
		t.Errorf("expected status %d, got %d", store.ErrNotFound.Code, storeErr.Code)
	}
}

func TestCreateClub_DuplicateDetection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club")

	tests := []struct {
		name string
		club *domain.Club
	}{
		{"same code", domain.NewClub("club-2", "pppjo", "Other Name", "")},
		{"code differing in case", domain.NewClub("club-3", "PPPJO", "Other Name", "")},
		{"same name", domain.NewClub("club-4", "other", "Juggling Club", "")},
		{"name differing in case", domain.NewClub("club-5", "other", "JUGGLING CLUB", "")},
		{"new name equals existing code", domain.NewClub("club-6", "other", "pppjo", "")},
		{"new code equals existing name", domain.NewClub("club-7", "juggling club", "Other Name", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateClub(ctx, tt.club, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var storeErr *store.Error
			if !errors.As(err, &storeErr) || storeErr.Code != store.ErrAlreadyExists.Code {
				t.Errorf("expected already exists, got %v", err)
			}
		})
	}
}

func TestCreateClub_DuplicateTagsCollapse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := mustCreateClub(t, s, "club-1", "dup", "Dup Tags Club", "Tech", "Tech", "Athletics")

	if want := []string{"Tech", "Athletics"}; !reflect.DeepEqual(c.TagNames, want) {
		t.Errorf("TagNames: got %v, want %v", c.TagNames, want)
	}

	tag, err := s.GetTagByName(ctx, "Tech")
	if err != nil {
		t.Fatalf("GetTagByName: %v", err)
	}
	if tag.ClubCount != 1 {
		t.Errorf("ClubCount: got %d, want 1", tag.ClubCount)
	}
}

func TestSearchClubsByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "pppjo", "Penn Juggling Organization")
	mustCreateClub(t, s, "club-2", "lorem", "Lorem Ipsum Society")
	mustCreateClub(t, s, "club-3", "jug2", "Advanced Juggling Circle")

	clubs, err := s.SearchClubsByName(ctx, "juggling")
	if err != nil {
		t.Fatalf("SearchClubsByName: %v", err)
	}
	if len(clubs) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(clubs))
	}
	if clubs[0].ID != "club-1" || clubs[1].ID != "club-3" {
		t.Errorf("wrong clubs or order: %q, %q", clubs[0].ID, clubs[1].ID)
	}

	// Matching is against names only, never codes.
	clubs, err = s.SearchClubsByName(ctx, "lorem")
	if err != nil {
		t.Fatalf("SearchClubsByName: %v", err)
	}
	if len(clubs) != 1 || clubs[0].ID != "club-2" {
		t.Errorf("expected club-2 only, got %d clubs", len(clubs))
	}

	// Zero hits is a valid empty result at the store level.
	clubs, err = s.SearchClubsByName(ctx, "zzz")
	if err != nil {
		t.Fatalf("SearchClubsByName zero hits: %v", err)
	}
	if len(clubs) != 0 {
		t.Errorf("expected no clubs, got %d", len(clubs))
	}
}

func TestSearchClubsByName_WildcardsAreLiteral(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "pct", "100% Commitment Club")
	mustCreateClub(t, s, "club-2", "plain", "Commitment Society")

	clubs, err := s.SearchClubsByName(ctx, "100%")
	if err != nil {
		t.Fatalf("SearchClubsByName: %v", err)
	}
	if len(clubs) != 1 || clubs[0].ID != "club-1" {
		t.Errorf("%% should match literally, got %d clubs", len(clubs))
	}
}

func TestListClubs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	clubs, err := s.ListClubs(ctx)
	if err != nil {
		t.Fatalf("ListClubs empty: %v", err)
	}
	if len(clubs) != 0 {
		t.Fatalf("expected empty list, got %d", len(clubs))
	}

	mustCreateClub(t, s, "club-1", "aaa", "Alpha Club", "Tech")
	mustCreateClub(t, s, "club-2", "bbb", "Beta Club")

	clubs, err = s.ListClubs(ctx)
	if err != nil {
		t.Fatalf("ListClubs: %v", err)
	}
	if len(clubs) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(clubs))
	}
	if clubs[0].Code != "aaa" || clubs[1].Code != "bbb" {
		t.Errorf("wrong order: %q, %q", clubs[0].Code, clubs[1].Code)
	}
	if want := []string{"Tech"}; !reflect.DeepEqual(clubs[0].TagNames, want) {
		t.Errorf("TagNames: got %v, want %v", clubs[0].TagNames, want)
	}
}

func TestUpdateClubByCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club", "Athletics")

	name := "Juggling Organization"
	desc := "Now with more balls."
	got, err := s.UpdateClubByCode(ctx, "PPPJO", domain.ClubPatch{
		Name:        &name,
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("UpdateClubByCode: %v", err)
	}
	if got.Name != name {
		t.Errorf("Name: got %q, want %q", got.Name, name)
	}
	if got.Description != desc {
		t.Errorf("Description: got %q, want %q", got.Description, desc)
	}
	// Code is untouched, tag set untouched with a nil patch.
	if got.Code != "pppjo" {
		t.Errorf("Code: got %q, want pppjo", got.Code)
	}
	if want := []string{"Athletics"}; !reflect.DeepEqual(got.TagNames, want) {
		t.Errorf("TagNames: got %v, want %v", got.TagNames, want)
	}
}

func TestUpdateClubByCode_ReplacesTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "pppjo", "Juggling Club", "Athletics", "Undergraduate")

	got, err := s.UpdateClubByCode(ctx, "pppjo", domain.ClubPatch{
		TagNames: []string{"Tech"},
	})
	if err != nil {
		t.Fatalf("UpdateClubByCode: %v", err)
	}
	if want := []string{"Tech"}; !reflect.DeepEqual(got.TagNames, want) {
		t.Errorf("TagNames: got %v, want %v", got.TagNames, want)
	}

	// Detached tags survive with a zero count.
	tag, err := s.GetTagByName(ctx, "Athletics")
	if err != nil {
		t.Fatalf("GetTagByName: %v", err)
	}
	if tag.ClubCount != 0 {
		t.Errorf("ClubCount: got %d, want 0", tag.ClubCount)
	}

	// An explicit empty set clears the tags.
	got, err = s.UpdateClubByCode(ctx, "pppjo", domain.ClubPatch{TagNames: []string{}})
	if err != nil {
		t.Fatalf("UpdateClubByCode clear: %v", err)
	}
	if len(got.TagNames) != 0 {
		t.Errorf("TagNames: got %v, want empty", got.TagNames)
	}
}

func TestUpdateClubByCode_NotFound(t *testing.T) {
	s := newTestStore(t)

	name := "Anything"
	_, err := s.UpdateClubByCode(context.Background(), "nope", domain.ClubPatch{Name: &name})
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrNotFound.Code {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateClubByCode_RenameCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateClub(t, s, "club-1", "aaa", "Alpha Club")
	mustCreateClub(t, s, "club-2", "bbb", "Beta Club")

	name := "ALPHA CLUB"
	_, err := s.UpdateClubByCode(ctx, "bbb", domain.ClubPatch{Name: &name})
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrAlreadyExists.Code {
		t.Errorf("expected already exists, got %v", err)
	}

	// The failed rename must not have partially applied.
	got, err := s.GetClubByCode(ctx, "bbb")
	if err != nil {
		t.Fatalf("GetClubByCode: %v", err)
	}
	if got.Name != "Beta Club" {
		t.Errorf("Name after failed rename: got %q, want Beta Club", got.Name)
	}
}
