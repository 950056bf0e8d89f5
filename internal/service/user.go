package service

import (
	"context"
	"log/slog"

	"github.com/clubreviewapp/clubreview-server/internal/auth"
	"github.com/clubreviewapp/clubreview-server/internal/domain"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

// UserJSON is the public user payload. The password hash never appears
// here.
type UserJSON struct {
	Handle    string   `json:"user"`
	Name      string   `json:"name"`
	Year      *int     `json:"year,omitempty"`
	Email     string   `json:"email,omitempty"`
	Favorites []string `json:"favorites"`
}

func userToJSON(u *domain.User) UserJSON {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return UserJSON{
		Handle:    u.Handle,
		Name:      u.Name,
		Year:      u.Year,
		Email:     u.Email,
		Favorites: favorites,
	}
}

// UserService orchestrates user profile operations.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// GetProfile returns the public profile for the handle, matched
// case-insensitively.
func (s *UserService) GetProfile(ctx context.Context, handle string) (*UserJSON, error) {
	u, err := s.store.GetUserByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	payload := userToJSON(u)
	return &payload, nil
}

// GetProfileByID returns the public profile for a user ID. Used for the
// authenticated "who am I" read.
func (s *UserService) GetProfileByID(ctx context.Context, userID string) (*UserJSON, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload := userToJSON(u)
	return &payload, nil
}

// UpdateProfileInput carries the mutable profile fields. Nil means leave
// unchanged. FavoriteCode, when set, favorites the club with exactly that
// code (a repeat favorite is a no-op).
type UpdateProfileInput struct {
	Year         *int
	Email        *string
	Password     *string
	FavoriteCode *string
}

// UpdateProfile applies the changes to the authenticated user and
// returns the resulting profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*UserJSON, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Year != nil {
		u.Year = input.Year
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, store.ErrInvalidInput.WithMessage("invalid password").WithCause(err)
		}
		u.PasswordHash = hash
	}

	u.Touch()
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	if input.FavoriteCode != nil {
		if err := s.store.AddFavorite(ctx, u.ID, *input.FavoriteCode); err != nil {
			return nil, err
		}
		s.logger.Info("club favorited", "user", u.Handle, "club", *input.FavoriteCode)
	}

	// Re-read so the favorites list reflects the change.
	u, err = s.store.GetUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	payload := userToJSON(u)
	return &payload, nil
}
