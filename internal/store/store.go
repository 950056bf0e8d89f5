// Package store defines the persistence contract for the club directory
// and the domain errors shared by its implementations.
package store

import (
	"context"

	"github.com/clubreviewapp/clubreview-server/internal/domain"
)

// Store is the persistence interface consumed by the service layer.
// All mutating operations are atomic: either the entity and its
// association rows are all visible afterwards, or none are.
type Store interface {
	// Clubs.

	// CreateClub persists a new club and attaches the resolved tags in one
	// transaction. Returns ErrAlreadyExists when the new code or name
	// collides case-insensitively with any existing club's code or name.
	CreateClub(ctx context.Context, club *domain.Club, tagNames []string) error

	// GetClubByCode retrieves a club by code, matched case-insensitively.
	GetClubByCode(ctx context.Context, code string) (*domain.Club, error)

	// GetClubByCodeExact retrieves a club by exact code match.
	GetClubByCodeExact(ctx context.Context, code string) (*domain.Club, error)

	// SearchClubsByName returns clubs whose name contains the query,
	// compared case-insensitively. An empty result is not an error.
	SearchClubsByName(ctx context.Context, query string) ([]*domain.Club, error)

	// ListClubs returns all clubs with tags and favorite counts populated.
	ListClubs(ctx context.Context) ([]*domain.Club, error)

	// UpdateClubByCode applies the patch to the club with the given code
	// (matched case-insensitively). A non-nil tag set in the patch
	// replaces the club's tags wholly. Returns ErrNotFound if no club
	// matches, ErrAlreadyExists if a renamed club would collide.
	UpdateClubByCode(ctx context.Context, code string, patch domain.ClubPatch) (*domain.Club, error)

	// Tags.

	// ResolveTags maps tag names to persisted tags, creating missing ones.
	// The result is one-to-one with the input, in input order; duplicate
	// names collapse to the same tag. Never creates two rows for a name.
	ResolveTags(ctx context.Context, names []string) ([]*domain.Tag, error)

	// GetTagByName retrieves a tag by exact name match.
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)

	// GetTagByNameFold retrieves a tag by case-insensitive name match.
	GetTagByNameFold(ctx context.Context, name string) (*domain.Tag, error)

	// ListTags returns all tags with club counts populated.
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// GetClubNamesForTag returns the names of clubs carrying the tag.
	GetClubNamesForTag(ctx context.Context, tagID string) ([]string, error)

	// Users.

	// CreateUser persists a new user. Returns ErrAlreadyExists when the
	// handle is already taken (exact match).
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// GetUserByHandle retrieves a user by handle, matched case-insensitively.
	GetUserByHandle(ctx context.Context, handle string) (*domain.User, error)

	// GetUserByHandleExact retrieves a user by exact handle match.
	GetUserByHandleExact(ctx context.Context, handle string) (*domain.User, error)

	// UpdateUser performs a full row update on an existing user.
	UpdateUser(ctx context.Context, user *domain.User) error

	// Favorites.

	// AddFavorite records that the user favorited the club with the given
	// code. The code is matched by exact equality, unlike club lookups
	// elsewhere. Idempotent: favoriting twice leaves a single row.
	AddFavorite(ctx context.Context, userID, clubCode string) error

	// CountFavorites returns the number of distinct users who favorited
	// the club.
	CountFavorites(ctx context.Context, clubID string) (int, error)

	Close() error
}
