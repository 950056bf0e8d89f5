package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubreviewapp/clubreview-server/internal/store"
)

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Signup(context.Background(), SignupRequest{
		Handle:   "josh",
		Name:     "Josh",
		Password: "template1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "josh", resp.User.Handle)

	claims, err := env.auth.VerifyAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "josh", claims.Handle)
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  SignupRequest
	}{
		{"missing handle", SignupRequest{Name: "X", Password: "template1234"}},
		{"missing password", SignupRequest{Handle: "x", Name: "X"}},
		{"short password", SignupRequest{Handle: "josh", Name: "X", Password: "short"}},
		{"bad email", SignupRequest{Handle: "josh", Name: "X", Password: "template1234", Email: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Signup(ctx, tt.req)
			var storeErr *store.Error
			require.True(t, errors.As(err, &storeErr), "got %v", err)
			assert.Equal(t, store.ErrInvalidInput.Code, storeErr.Code)
		})
	}
}

func TestSignup_DuplicateHandle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustSignup(t, "josh", "template1234")

	_, err := env.auth.Signup(ctx, SignupRequest{
		Handle:   "josh",
		Name:     "Impostor",
		Password: "template1234",
	})
	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, store.ErrAlreadyExists.Code, storeErr.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustSignup(t, "josh", "template1234")

	// Handle matching folds case at login.
	resp, err := env.auth.Login(ctx, LoginRequest{Handle: "JOSH", Password: "template1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "josh", resp.User.Handle)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustSignup(t, "josh", "template1234")

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Handle: "josh", Password: "wrong-password"}},
		{"unknown handle", LoginRequest{Handle: "ghost", Password: "template1234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Login(ctx, tt.req)
			var storeErr *store.Error
			require.True(t, errors.As(err, &storeErr))
			assert.Equal(t, store.ErrUnauthorized.Code, storeErr.Code)
			// Same message either way, no account probing.
			assert.Equal(t, "invalid credentials", storeErr.Message)
		})
	}
}

func TestVerifyAccessToken_Invalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.VerifyAccessToken("v4.local.not-a-token")
	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, store.ErrUnauthorized.Code, storeErr.Code)
}
