// Package service implements the application logic between the HTTP
// handlers and the store.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/clubreviewapp/clubreview-server/internal/cache"
	"github.com/clubreviewapp/clubreview-server/internal/domain"
	"github.com/clubreviewapp/clubreview-server/internal/id"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

// Cache keys for club listings.
const (
	cacheKeyClubsAll = "clubs:all"
)

// ClubJSON is the serialized club payload returned by the read API.
type ClubJSON struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Favorited   int      `json:"favorited"`
	Tags        []string `json:"tags"`
}

// clubToJSON flattens a domain club into its API shape.
func clubToJSON(c *domain.Club) ClubJSON {
	tags := c.TagNames
	if tags == nil {
		tags = []string{}
	}
	return ClubJSON{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		Favorited:   c.FavoriteCount,
		Tags:        tags,
	}
}

// ClubService orchestrates club directory operations.
type ClubService struct {
	store  store.Store
	cache  *cache.Cache
	logger *slog.Logger
}

// NewClubService creates a new club service.
func NewClubService(store store.Store, cache *cache.Cache, logger *slog.Logger) *ClubService {
	return &ClubService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// ListClubs returns the serialized listing of every club. Results are
// cached under a single key; within the TTL window the store is not hit
// and new writes may not be visible.
func (s *ClubService) ListClubs(ctx context.Context) ([]ClubJSON, error) {
	if cached, ok := s.cache.Get(cacheKeyClubsAll); ok {
		return cached.([]ClubJSON), nil
	}

	clubs, err := s.store.ListClubs(ctx)
	if err != nil {
		return nil, err
	}

	payload := make([]ClubJSON, 0, len(clubs))
	for _, c := range clubs {
		payload = append(payload, clubToJSON(c))
	}

	s.cache.Set(cacheKeyClubsAll, payload)
	s.logger.Debug("club listing cached", "count", len(payload))
	return payload, nil
}

// CreateClubInput carries the fields accepted when registering a club.
type CreateClubInput struct {
	Code        string
	Name        string
	Description string
	Tags        []string
}

// CreateClub registers a new club. The code is normalized to lowercase
// before storage; missing tags are created on the fly. Returns the
// serialized club as persisted.
func (s *ClubService) CreateClub(ctx context.Context, input CreateClubInput) (*ClubJSON, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, store.ErrInvalidInput.WithMessage("name is required")
	}
	if strings.TrimSpace(input.Code) == "" {
		return nil, store.ErrInvalidInput.WithMessage("code is required")
	}

	clubID, err := id.Generate("club")
	if err != nil {
		return nil, err
	}

	club := domain.NewClub(clubID, strings.ToLower(input.Code), input.Name, input.Description)
	if err := s.store.CreateClub(ctx, club, input.Tags); err != nil {
		return nil, err
	}

	s.logger.Info("club created",
		"code", club.Code,
		"name", club.Name,
		"tags", len(club.TagNames),
	)

	payload := clubToJSON(club)
	return &payload, nil
}

// SearchClubs returns clubs whose name contains the query,
// case-insensitively. A valid query that matches nothing yields
// store.ErrNoContent rather than an empty list.
func (s *ClubService) SearchClubs(ctx context.Context, query string) ([]ClubJSON, error) {
	clubs, err := s.store.SearchClubsByName(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(clubs) == 0 {
		return nil, store.ErrNoContent
	}

	payload := make([]ClubJSON, 0, len(clubs))
	for _, c := range clubs {
		payload = append(payload, clubToJSON(c))
	}
	return payload, nil
}

// UpdateClubInput carries the mutable fields of a club. Nil means leave
// unchanged; a non-nil Tags replaces the tag set wholly.
type UpdateClubInput struct {
	Name        *string
	Description *string
	Tags        []string
}

// UpdateClub modifies the club matching code (case-insensitively) and
// returns its serialized state after the update.
func (s *ClubService) UpdateClub(ctx context.Context, code string, input UpdateClubInput) (*ClubJSON, error) {
	patch := domain.ClubPatch{
		Name:        input.Name,
		Description: input.Description,
		TagNames:    input.Tags,
	}

	club, err := s.store.UpdateClubByCode(ctx, code, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("club updated", "code", club.Code)

	payload := clubToJSON(club)
	return &payload, nil
}
