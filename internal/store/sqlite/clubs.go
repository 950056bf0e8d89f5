package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/clubreviewapp/clubreview-server/internal/domain"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

// clubColumns is the ordered list of columns selected in club queries.
// Must match the scan order in scanClub.
const clubColumns = `id, code, name, description, created_at, updated_at`

// scanClub scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Club. Associations are loaded separately by loadClubAssociations.
func scanClub(scanner interface{ Scan(dest ...any) error }) (*domain.Club, error) {
	var c domain.Club

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// loadClubAssociations populates TagNames and FavoriteCount for a club.
// Tag names come back in attachment order.
func (s *Store) loadClubAssociations(ctx context.Context, c *domain.Club) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN club_tags ct ON ct.tag_id = t.id
		WHERE ct.club_id = ?
		ORDER BY ct.rowid ASC`, c.ID)
	if err != nil {
		return fmt.Errorf("query club tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan club tag: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	c.TagNames = names

	count, err := s.CountFavorites(ctx, c.ID)
	if err != nil {
		return err
	}
	c.FavoriteCount = count

	return nil
}

// CreateClub persists a new club and attaches the resolved tags in a
// single transaction. The duplicate check is symmetric: the new code and
// name are compared case-insensitively against every existing club's code
// and name. Returns store.ErrAlreadyExists on any collision.
func (s *Store) CreateClub(ctx context.Context, c *domain.Club, tagNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var collisions int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM clubs
		WHERE name IN (?1, ?2) OR code IN (?1, ?2)`,
		c.Name, c.Code,
	).Scan(&collisions)
	if err != nil {
		return fmt.Errorf("check club collision: %w", err)
	}
	if collisions > 0 {
		return store.ErrAlreadyExists
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO clubs (id, code, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Code,
		c.Name,
		c.Description,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		// A concurrent writer can slip past the check; the UNIQUE
		// constraints on code and name are the backstop.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	tags, err := resolveTagsTx(ctx, tx, tagNames)
	if err != nil {
		return err
	}
	if err := setClubTagsTx(ctx, tx, c.ID, tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	c.TagNames = tagNameSet(tags)
	c.FavoriteCount = 0
	return nil
}

// GetClubByCode retrieves a club by code, matched case-insensitively.
// Returns store.ErrNotFound if no club matches.
func (s *Store) GetClubByCode(ctx context.Context, code string) (*domain.Club, error) {
	// The code column collates NOCASE, so plain equality folds case.
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM clubs WHERE code = ?`, code)
	return s.clubFromRow(ctx, row)
}

// GetClubByCodeExact retrieves a club by exact code match.
// Returns store.ErrNotFound if no club matches.
func (s *Store) GetClubByCodeExact(ctx context.Context, code string) (*domain.Club, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM clubs WHERE code = ? COLLATE BINARY`, code)
	return s.clubFromRow(ctx, row)
}

// clubFromRow scans a single club row and loads its associations.
func (s *Store) clubFromRow(ctx context.Context, row *sql.Row) (*domain.Club, error) {
	c, err := scanClub(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadClubAssociations(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SearchClubsByName returns clubs whose name contains the query,
// compared case-insensitively. An empty result set is valid, not an error.
func (s *Store) SearchClubsByName(ctx context.Context, query string) ([]*domain.Club, error) {
	// instr avoids LIKE wildcard interpretation of % and _ in the query.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM clubs
		WHERE instr(lower(name), lower(?)) > 0
		ORDER BY created_at ASC`, query)
	if err != nil {
		return nil, err
	}
	return s.clubsFromRows(ctx, rows)
}

// ListClubs returns all clubs in creation order with tags and favorite
// counts populated.
func (s *Store) ListClubs(ctx context.Context) ([]*domain.Club, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM clubs ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	return s.clubsFromRows(ctx, rows)
}

// clubsFromRows scans all rows and loads associations for each club.
func (s *Store) clubsFromRows(ctx context.Context, rows *sql.Rows) ([]*domain.Club, error) {
	defer rows.Close()

	clubs := []*domain.Club{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range clubs {
		if err := s.loadClubAssociations(ctx, c); err != nil {
			return nil, err
		}
	}
	return clubs, nil
}

// UpdateClubByCode applies the patch to the club matching code
// (case-insensitively) in a single transaction. A non-nil tag set in the
// patch replaces the club's tags wholly. Returns store.ErrNotFound if no
// club matches and store.ErrAlreadyExists if a rename collides.
func (s *Store) UpdateClubByCode(ctx context.Context, code string, patch domain.ClubPatch) (*domain.Club, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM clubs WHERE code = ?`, code)
	c, err := scanClub(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	c.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, `
		UPDATE clubs SET name = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		c.Name,
		c.Description,
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, store.ErrAlreadyExists
		}
		return nil, err
	}

	if patch.TagNames != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM club_tags WHERE club_id = ?`, c.ID); err != nil {
			return nil, fmt.Errorf("delete club_tags: %w", err)
		}
		tags, err := resolveTagsTx(ctx, tx, patch.TagNames)
		if err != nil {
			return nil, err
		}
		if err := setClubTagsTx(ctx, tx, c.ID, tags); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.GetClubByCodeExact(ctx, c.Code)
}

// setClubTagsTx inserts club↔tag rows for the resolved tags. Duplicate
// names in the input collapse to one row via INSERT OR IGNORE.
func setClubTagsTx(ctx context.Context, tx *sql.Tx, clubID string, tags []*domain.Tag) error {
	now := formatTime(time.Now())
	for _, t := range tags {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO club_tags (club_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			clubID,
			t.ID,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert club_tag: %w", err)
		}
	}
	return nil
}

// tagNameSet returns the distinct tag names in first-seen order.
func tagNameSet(tags []*domain.Tag) []string {
	names := []string{}
	seen := map[string]bool{}
	for _, t := range tags {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		names = append(names, t.Name)
	}
	return names
}
