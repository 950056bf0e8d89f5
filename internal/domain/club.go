package domain

import "time"

// Club represents a directory entry for a student club.
// Code is the stable identity used in URLs; Name is the display identity.
// Both are unique: Name case-insensitively, Code case-insensitively on
// write (stored lowercased when created through the API).
type Club struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Denormalized association data, populated by store reads.
	TagNames      []string `json:"tags"`
	FavoriteCount int      `json:"favorited"`
}

// NewClub creates a club with the given identity and fresh timestamps.
func NewClub(id, code, name, description string) *Club {
	now := time.Now()
	return &Club{
		ID:          id,
		Code:        code,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		TagNames:    []string{},
	}
}

// Touch updates the UpdatedAt timestamp.
func (c *Club) Touch() {
	c.UpdatedAt = time.Now()
}

// ClubPatch describes a partial update to a club. Nil fields are left
// unchanged; a non-nil TagNames replaces the club's tag set wholly.
// Code and the favorite set are immutable through this path.
type ClubPatch struct {
	Name        *string
	Description *string
	TagNames    []string
}

// Empty reports whether the patch changes nothing.
func (p ClubPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.TagNames == nil
}
