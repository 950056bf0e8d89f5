package domain

import "time"

// User represents a registered student account.
// Handle is unique by exact string equality on write; lookups fold case.
type User struct {
	ID           string     `json:"id"`
	Handle       string     `json:"user"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Year         *int       `json:"year,omitempty"`
	Email        string     `json:"email,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Names of favorited clubs, populated by store reads.
	Favorites []string `json:"favorites"`
}

// NewUser creates a user with the given identity and fresh timestamps.
func NewUser(id, handle, name, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           id,
		Handle:       handle,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
		Favorites:    []string{},
	}
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// Favorite represents the many-to-many relationship between users and
// clubs expressing interest. Membership is a set; favoriting the same
// club twice leaves a single row.
type Favorite struct {
	UserID    string    `json:"user_id"`
	ClubID    string    `json:"club_id"`
	CreatedAt time.Time `json:"created_at"`
}
