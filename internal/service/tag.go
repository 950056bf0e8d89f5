package service

import (
	"context"
	"log/slog"

	"github.com/clubreviewapp/clubreview-server/internal/cache"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

// Cache keys for tag reads. Per-tag entries are keyed on the name as the
// caller supplied it, so lookups differing in case cache separately even
// when they resolve to the same tag.
const (
	cacheKeyTagsAll   = "tags:all"
	cacheKeyTagPrefix = "tag:"
)

// TagJSON is the serialized tag payload. Clubs is only populated on
// single-tag detail reads.
type TagJSON struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Clubs []string `json:"clubs,omitempty"`
}

// TagService orchestrates tag directory operations.
// Tags are community-wide; identity is the exact name string.
type TagService struct {
	store  store.Store
	cache  *cache.Cache
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, cache *cache.Cache, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// ListTags returns every tag with its club count. Cached under one key.
func (s *TagService) ListTags(ctx context.Context) ([]TagJSON, error) {
	if cached, ok := s.cache.Get(cacheKeyTagsAll); ok {
		return cached.([]TagJSON), nil
	}

	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	payload := make([]TagJSON, 0, len(tags))
	for _, t := range tags {
		payload = append(payload, TagJSON{Name: t.Name, Count: t.ClubCount})
	}

	s.cache.Set(cacheKeyTagsAll, payload)
	s.logger.Debug("tag listing cached", "count", len(payload))
	return payload, nil
}

// GetTagByName returns a single tag with the names of the clubs carrying
// it. The name is matched case-insensitively for the lookup, but the
// cache entry is keyed on the raw argument.
func (s *TagService) GetTagByName(ctx context.Context, name string) (*TagJSON, error) {
	cacheKey := cacheKeyTagPrefix + name
	if cached, ok := s.cache.Get(cacheKey); ok {
		payload := cached.(TagJSON)
		return &payload, nil
	}

	tag, err := s.store.GetTagByNameFold(ctx, name)
	if err != nil {
		return nil, err
	}

	clubs, err := s.store.GetClubNamesForTag(ctx, tag.ID)
	if err != nil {
		return nil, err
	}

	payload := TagJSON{
		Name:  tag.Name,
		Count: tag.ClubCount,
		Clubs: clubs,
	}

	s.cache.Set(cacheKey, payload)
	return &payload, nil
}
