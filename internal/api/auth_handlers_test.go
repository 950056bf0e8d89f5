package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubreviewapp/clubreview-server/internal/ratelimit"
	"github.com/clubreviewapp/clubreview-server/internal/service"
)

func TestSignup(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/auth/signup", map[string]any{
		"user":     "josh",
		"name":     "Josh Doe",
		"password": "template1234",
		"year":     2,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeData[service.AuthResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "josh", resp.User.Handle)
	require.NotNil(t, resp.User.Year)
	assert.Equal(t, 2, *resp.User.Year)
}

func TestSignup_DuplicateHandle(t *testing.T) {
	srv := newTestServer(t)
	signupAndLogin(t, srv, "josh")

	rec := doJSON(t, srv, http.MethodPost, "/auth/signup", map[string]any{
		"user":     "josh",
		"name":     "Another Josh",
		"password": "template1234",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignup_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing handle", map[string]any{"name": "Josh", "password": "template1234"}},
		{"short password", map[string]any{"user": "josh", "name": "Josh", "password": "short"}},
		{"bad email", map[string]any{"user": "josh", "name": "Josh", "password": "template1234", "email": "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/auth/signup", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	signupAndLogin(t, srv, "josh")

	rec := doJSON(t, srv, http.MethodPost, "/auth/login", map[string]any{
		"user":     "JOSH",
		"password": "template1234",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeData[service.AuthResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "josh", resp.User.Handle, "handle lookup is case-insensitive")
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)
	signupAndLogin(t, srv, "josh")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"wrong password", map[string]any{"user": "josh", "password": "wrongpassword"}},
		{"unknown handle", map[string]any{"user": "ghost", "password": "template1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/auth/login", tt.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := ratelimit.New(0.1, 2)
	t.Cleanup(limiter.Stop)
	srv := newTestServerWithLimiter(t, limiter)

	body := map[string]any{"user": "ghost", "password": "template1234"}

	for i := 0; i < 2; i++ {
		rec := doJSON(t, srv, http.MethodPost, "/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := doJSON(t, srv, http.MethodPost, "/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGetOwnProfile(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "josh")

	rec := doJSON(t, srv, http.MethodGet, "/auth/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	profile := decodeData[service.UserJSON](t, rec)
	assert.Equal(t, "josh", profile.Handle)
}

func TestGetOwnProfile_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "v4.local.garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodGet, "/auth/profile", nil, tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "josh")

	createTestClub(t, srv, "pppjo", "Juggling Club")

	rec := doJSON(t, srv, http.MethodPut, "/auth/profile", map[string]any{
		"year":     3,
		"email":    "josh@example.edu",
		"favorite": "pppjo",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	profile := decodeData[service.UserJSON](t, rec)
	require.NotNil(t, profile.Year)
	assert.Equal(t, 3, *profile.Year)
	assert.Equal(t, "josh@example.edu", profile.Email)
	assert.Equal(t, []string{"Juggling Club"}, profile.Favorites, "favorites list club names")
}

func TestUpdateProfile_FavoriteCountsOnce(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "josh")

	createTestClub(t, srv, "pppjo", "Juggling Club")

	for i := 0; i < 2; i++ {
		rec := doJSON(t, srv, http.MethodPut, "/auth/profile", map[string]any{
			"favorite": "pppjo",
		}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, srv, http.MethodGet, "/auth/profile", nil, token)
	profile := decodeData[service.UserJSON](t, rec)
	assert.Equal(t, []string{"Juggling Club"}, profile.Favorites)
}

func TestUpdateProfile_UnknownFavorite(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "josh")

	rec := doJSON(t, srv, http.MethodPut, "/auth/profile", map[string]any{
		"favorite": "ghost",
	}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfile_PasswordRotation(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "josh")

	rec := doJSON(t, srv, http.MethodPut, "/auth/profile", map[string]any{
		"password": "brandnewsecret",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/auth/login", map[string]any{
		"user":     "josh",
		"password": "template1234",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "old password no longer works")

	rec = doJSON(t, srv, http.MethodPost, "/auth/login", map[string]any{
		"user":     "josh",
		"password": "brandnewsecret",
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv, "josh")

	rec := doJSON(t, srv, http.MethodPost, "/auth/logout", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/auth/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
