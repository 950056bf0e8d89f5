package domain

import "time"

// Tag represents a label attachable to any number of clubs.
// Name is the source of truth for identity and is compared by exact
// string equality, so "Tech" and "tech" are distinct tags.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClubCount int       `json:"club_count"` // Denormalized count of clubs carrying this tag
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTag creates a tag with the given identity and fresh timestamps.
func NewTag(id, name string) *Tag {
	now := time.Now()
	return &Tag{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// ClubTag represents the many-to-many relationship between clubs and tags.
// Membership is a set; attaching the same pair twice is a no-op.
type ClubTag struct {
	ClubID    string    `json:"club_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
