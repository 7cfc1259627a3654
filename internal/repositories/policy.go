package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PolicyRepository handles privacy-policy persistence. Policies are
// append-only; the most recently inserted row is authoritative.
type PolicyRepository struct {
	db *pgxpool.Pool
}

// NewPolicyRepository creates a new PolicyRepository with the given pool
func NewPolicyRepository(db *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// Latest returns the most recently inserted policy.
func (r *PolicyRepository) Latest(ctx context.Context) (models.PrivacyPolicy, error) {
	var policy models.PrivacyPolicy
	err := r.db.QueryRow(ctx,
		"SELECT id, body FROM privacy_policies ORDER BY id DESC LIMIT 1",
	).Scan(&policy.ID, &policy.Body)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PrivacyPolicy{}, fmt.Errorf("privacy policy: %w", shared.ErrNotFound)
	}
	if err != nil {
		return models.PrivacyPolicy{}, fmt.Errorf("failed to query privacy policy: %w", err)
	}

	return policy, nil
}

// Create appends a new policy revision and returns it.
func (r *PolicyRepository) Create(ctx context.Context, body string) (models.PrivacyPolicy, error) {
	var policy models.PrivacyPolicy
	err := r.db.QueryRow(ctx,
		"INSERT INTO privacy_policies (body) VALUES ($1) RETURNING id, body", body,
	).Scan(&policy.ID, &policy.Body)
	if err != nil {
		return models.PrivacyPolicy{}, fmt.Errorf("failed to insert privacy policy: %w", err)
	}

	return policy, nil
}
