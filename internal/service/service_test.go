package service

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clubreviewapp/clubreview-server/internal/auth"
	"github.com/clubreviewapp/clubreview-server/internal/cache"
	"github.com/clubreviewapp/clubreview-server/internal/store/sqlite"
	"github.com/clubreviewapp/clubreview-server/internal/validation"
)

// testEnv bundles the services under test with their shared backing store.
type testEnv struct {
	store *sqlite.Store
	cache *cache.Cache
	clubs *ClubService
	tags  *TagService
	users *UserService
	auth  *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	authKey, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	tokenService, err := auth.NewTokenService(hex.EncodeToString(authKey), time.Hour)
	require.NoError(t, err)

	c := cache.New(5 * time.Minute)
	v := validation.New()

	return &testEnv{
		store: s,
		cache: c,
		clubs: NewClubService(s, c, logger),
		tags:  NewTagService(s, c, logger),
		users: NewUserService(s, logger),
		auth:  NewAuthService(s, tokenService, v, logger),
	}
}

// mustSignup registers a user and returns the auth response.
func (e *testEnv) mustSignup(t *testing.T, handle, password string) *AuthResponse {
	t.Helper()
	resp, err := e.auth.Signup(context.Background(), SignupRequest{
		Handle:   handle,
		Name:     "Test " + handle,
		Password: password,
	})
	require.NoError(t, err)
	return resp
}

// mustCreateClub registers a club through the service layer.
func (e *testEnv) mustCreateClub(t *testing.T, code, name string, tags ...string) *ClubJSON {
	t.Helper()
	club, err := e.clubs.CreateClub(context.Background(), CreateClubInput{
		Code: code,
		Name: name,
		Tags: tags,
	})
	require.NoError(t, err)
	return club
}
