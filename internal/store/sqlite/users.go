package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/clubreviewapp/clubreview-server/internal/domain"
	"github.com/clubreviewapp/clubreview-server/internal/store"
)

const userColumns = `id, handle, name, password_hash, year, email, created_at, updated_at`

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		year      sql.NullInt64
		email     sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Handle,
		&u.Name,
		&u.PasswordHash,
		&year,
		&email,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if year.Valid {
		v := int(year.Int64)
		u.Year = &v
	}
	u.Email = email.String

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser persists a new user. Returns store.ErrAlreadyExists when the
// handle is taken (exact match).
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, handle, name, password_hash, year, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Handle,
		u.Name,
		u.PasswordHash,
		nullInt(u.Year),
		nullString(u.Email),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	u.Favorites = []string{}
	return nil
}

// GetUser retrieves a user by ID. Returns store.ErrNotFound if no user
// matches.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return s.userFromRow(ctx, row)
}

// GetUserByHandle retrieves a user by handle, matched case-insensitively.
// Returns store.ErrNotFound if no user matches.
func (s *Store) GetUserByHandle(ctx context.Context, handle string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(handle) = lower(?)`, handle)
	return s.userFromRow(ctx, row)
}

// GetUserByHandleExact retrieves a user by exact handle match.
// Returns store.ErrNotFound if no user matches.
func (s *Store) GetUserByHandleExact(ctx context.Context, handle string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE handle = ?`, handle)
	return s.userFromRow(ctx, row)
}

func (s *Store) userFromRow(ctx context.Context, row *sql.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadUserFavorites(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// loadUserFavorites populates the names of the user's favorited clubs in
// favoriting order.
func (s *Store) loadUserFavorites(ctx context.Context, u *domain.User) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name FROM clubs c
		JOIN user_favorites uf ON uf.club_id = c.id
		WHERE uf.user_id = ?
		ORDER BY uf.rowid ASC`, u.ID)
	if err != nil {
		return fmt.Errorf("query user favorites: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan favorite: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}
	u.Favorites = names
	return nil
}

// UpdateUser performs a full row update on an existing user.
// Returns store.ErrNotFound if no user matches the ID.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET handle = ?, name = ?, password_hash = ?, year = ?, email = ?, updated_at = ?
		WHERE id = ?`,
		u.Handle,
		u.Name,
		u.PasswordHash,
		nullInt(u.Year),
		nullString(u.Email),
		formatTime(u.UpdatedAt),
		u.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}
