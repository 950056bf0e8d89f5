package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubreviewapp/clubreview-server/internal/store"
)

func TestListTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateClub(t, "aaa", "Alpha Club", "Tech", "Athletics")
	env.mustCreateClub(t, "bbb", "Beta Club", "Tech")

	tags, err := env.tags.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	counts := map[string]int{}
	for _, tag := range tags {
		counts[tag.Name] = tag.Count
		assert.Nil(t, tag.Clubs, "listing omits club names")
	}
	assert.Equal(t, 2, counts["Tech"])
	assert.Equal(t, 1, counts["Athletics"])
}

func TestListTags_Cached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateClub(t, "aaa", "Alpha Club", "Tech")

	first, err := env.tags.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	env.mustCreateClub(t, "bbb", "Beta Club", "Music")

	second, err := env.tags.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1, "new tags stay invisible within the TTL")
}

func TestGetTagByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateClub(t, "aaa", "Alpha Club", "Tech")
	env.mustCreateClub(t, "bbb", "Beta Club", "Tech")

	// Lookup folds case but the payload carries the canonical name.
	tag, err := env.tags.GetTagByName(ctx, "tech")
	require.NoError(t, err)
	assert.Equal(t, "Tech", tag.Name)
	assert.Equal(t, 2, tag.Count)
	assert.Equal(t, []string{"Alpha Club", "Beta Club"}, tag.Clubs)
}

func TestGetTagByName_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tags.GetTagByName(context.Background(), "ghost")
	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, store.ErrNotFound.Code, storeErr.Code)
}

func TestGetTagByName_CacheKeyedOnRawName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateClub(t, "aaa", "Alpha Club", "Tech")

	// Warm the cache under one casing.
	_, err := env.tags.GetTagByName(ctx, "Tech")
	require.NoError(t, err)
	assert.Equal(t, 1, env.cache.Len())

	// A different casing is a separate cache entry.
	_, err = env.tags.GetTagByName(ctx, "TECH")
	require.NoError(t, err)
	assert.Equal(t, 2, env.cache.Len())
}
