package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/clubreviewapp/clubreview-server/internal/domain"
	"github.com/clubreviewapp/clubreview-server/internal/id"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

const tagColumns = `id, name, created_at, updated_at`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag persists a new tag. Returns store.ErrAlreadyExists when the
// name is taken (exact match).
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		t.ID,
		t.Name,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTagByName retrieves a tag by exact name match.
// Returns store.ErrNotFound if no tag matches.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)
	return s.tagFromRow(ctx, row)
}

// GetTagByNameFold retrieves a tag by case-insensitive name match.
// Returns store.ErrNotFound if no tag matches.
func (s *Store) GetTagByNameFold(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE lower(name) = lower(?)`, name)
	return s.tagFromRow(ctx, row)
}

func (s *Store) tagFromRow(ctx context.Context, row *sql.Row) (*domain.Tag, error) {
	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.ClubCount, err = s.countTagClubs(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns all tags in creation order with club counts populated.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at, t.updated_at,
		       (SELECT COUNT(*) FROM club_tags ct WHERE ct.tag_id = t.id)
		FROM tags t
		ORDER BY t.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		var createdAt, updatedAt string
		err := rows.Scan(&t.ID, &t.Name, &createdAt, &updatedAt, &t.ClubCount)
		if err != nil {
			return nil, err
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		t.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetClubNamesForTag returns the names of clubs carrying the tag, in
// attachment order.
func (s *Store) GetClubNamesForTag(ctx context.Context, tagID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name FROM clubs c
		JOIN club_tags ct ON ct.club_id = c.id
		WHERE ct.tag_id = ?
		ORDER BY ct.rowid ASC`, tagID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) countTagClubs(ctx context.Context, tagID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM club_tags WHERE tag_id = ?`, tagID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tag clubs: %w", err)
	}
	return count, nil
}

// ResolveTags maps tag names to persisted tags, creating missing ones in
// a single transaction. The result is one-to-one with the input, in input
// order; duplicate names collapse to the same tag.
func (s *Store) ResolveTags(ctx context.Context, names []string) ([]*domain.Tag, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	tags, err := resolveTagsTx(ctx, tx, names)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return tags, nil
}

// resolveTagsTx finds or creates a tag row per name inside tx. Existing
// tags are reused by exact name; INSERT OR IGNORE followed by a re-select
// makes a lost race against another writer land on the surviving row.
func resolveTagsTx(ctx context.Context, tx *sql.Tx, names []string) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0, len(names))
	seen := map[string]*domain.Tag{}

	for _, name := range names {
		if t, ok := seen[name]; ok {
			tags = append(tags, t)
			continue
		}

		t, err := findTagTx(ctx, tx, name)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if err == sql.ErrNoRows {
			tagID, err := id.Generate("tag")
			if err != nil {
				return nil, err
			}
			fresh := domain.NewTag(tagID, name)
			_, err = tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO tags (id, name, created_at, updated_at)
				VALUES (?, ?, ?, ?)`,
				fresh.ID,
				fresh.Name,
				formatTime(fresh.CreatedAt),
				formatTime(fresh.UpdatedAt),
			)
			if err != nil {
				return nil, fmt.Errorf("insert tag %q: %w", name, err)
			}
			t, err = findTagTx(ctx, tx, name)
			if err != nil {
				return nil, fmt.Errorf("reselect tag %q: %w", name, err)
			}
		}

		seen[name] = t
		tags = append(tags, t)
	}

	return tags, nil
}

func findTagTx(ctx context.Context, tx *sql.Tx, name string) (*domain.Tag, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)
	return scanTag(row)
}
