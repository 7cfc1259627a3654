package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/resonate/internal/shared"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles follow-list persistence and username search.
//
// Follow and unfollow are single conditional UPDATE statements so two
// concurrent toggles on the same user cannot drop each other's writes.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository with the given pool
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Following returns the stored follow list for a username.
func (r *UserRepository) Following(ctx context.Context, username string) ([]string, error) {
	var following []string
	err := r.db.QueryRow(ctx,
		"SELECT following FROM users WHERE username = $1", username,
	).Scan(&following)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query follow list: %w", err)
	}

	return following, nil
}

// Follow appends target to username's follow list if absent and returns the
// new list.
//
// The membership check lives in the UPDATE's WHERE clause, so the append is
// atomic; a zero-row result is disambiguated afterwards into "no such user"
// ([shared.ErrNotFound]) or "already followed" ([shared.ErrAlreadyFollowed]).
func (r *UserRepository) Follow(ctx context.Context, username, target string) ([]string, error) {
	var following []string
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET following = array_append(following, $2)
		WHERE username = $1 AND NOT ($2 = ANY(following))
		RETURNING following
	`, username, target).Scan(&following)

	if errors.Is(err, pgx.ErrNoRows) {
		if _, lookupErr := r.Following(ctx, username); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, fmt.Errorf("%s follows %s: %w", username, target, shared.ErrAlreadyFollowed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update follow list: %w", err)
	}

	return following, nil
}

// Unfollow removes target from username's follow list and returns the new
// list. Removing an absent entry is a no-op.
func (r *UserRepository) Unfollow(ctx context.Context, username, target string) ([]string, error) {
	var following []string
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET following = array_remove(following, $2)
		WHERE username = $1
		RETURNING following
	`, username, target).Scan(&following)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update follow list: %w", err)
	}

	return following, nil
}

// Search returns usernames containing the given substring, case-insensitive.
func (r *UserRepository) Search(ctx context.Context, substring string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		"SELECT username FROM users WHERE username ILIKE '%' || $1 || '%' ORDER BY username",
		substring,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search usernames: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		usernames = append(usernames, username)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return usernames, nil
}
