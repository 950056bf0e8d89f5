package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/clubreviewapp/clubreview-server/internal/store"
)

// AddFavorite records that the user favorited the club with the given
// code. The code is matched by exact equality. Idempotent: favoriting the
// same club twice leaves a single row. Returns store.ErrNotFound when no
// club has exactly that code.
func (s *Store) AddFavorite(ctx context.Context, userID, clubCode string) error {
	var clubID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM clubs WHERE code = ? COLLATE BINARY`, clubCode).Scan(&clubID)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup club %q: %w", clubCode, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_favorites (user_id, club_id, created_at)
		VALUES (?, ?, ?)`,
		userID,
		clubID,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// CountFavorites returns the number of distinct users who favorited the
// club.
func (s *Store) CountFavorites(ctx context.Context, clubID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_favorites WHERE club_id = ?`, clubID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return count, nil
}
