package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = `review_id, music_id, username, rating, review_title, review_body, created_at`

// ReviewRepository handles review persistence.
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository with the given pool
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListAll retrieves every review, newest first.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	query := "SELECT " + reviewColumns + " FROM reviews ORDER BY created_at DESC"
	return r.list(ctx, query)
}

// ListByMusic retrieves reviews for one music id, newest first.
func (r *ReviewRepository) ListByMusic(ctx context.Context, musicID string) ([]models.Review, error) {
	query := "SELECT " + reviewColumns + " FROM reviews WHERE music_id = $1 ORDER BY created_at DESC"
	return r.list(ctx, query, musicID)
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return reviews, nil
}

// ListByUser retrieves one user's reviews joined with the music metadata
// needed to display them, newest first.
func (r *ReviewRepository) ListByUser(ctx context.Context, username string) ([]models.UserReview, error) {
	query := `
		SELECT reviews.review_id, reviews.music_id, reviews.username, reviews.rating,
			reviews.review_title, reviews.review_body, reviews.created_at,
			music.artist_names, music.name, music.album_img
		FROM reviews
		JOIN music ON reviews.music_id = music.music_id
		WHERE reviews.username = $1
		ORDER BY reviews.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.UserReview
	for rows.Next() {
		var review models.UserReview
		err := rows.Scan(
			&review.ReviewID,
			&review.MusicID,
			&review.Username,
			&review.Rating,
			&review.ReviewTitle,
			&review.ReviewBody,
			&review.CreatedAt,
			&review.ArtistNames,
			&review.Name,
			&review.AlbumImg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return reviews, nil
}

// Insert creates a review with a server-assigned timestamp and returns the
// created row.
func (r *ReviewRepository) Insert(ctx context.Context, musicID, username string, rating int, title, body *string) (models.Review, error) {
	query := `
		INSERT INTO reviews (music_id, username, rating, review_title, review_body, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING ` + reviewColumns

	var review models.Review
	err := r.db.QueryRow(ctx, query, musicID, username, rating, title, body).Scan(
		&review.ReviewID,
		&review.MusicID,
		&review.Username,
		&review.Rating,
		&review.ReviewTitle,
		&review.ReviewBody,
		&review.CreatedAt,
	)
	if err != nil {
		return models.Review{}, fmt.Errorf("failed to insert review: %w", err)
	}

	return review, nil
}

// Delete removes a review by id. Returns [shared.ErrNotFound] when no row
// was removed.
func (r *ReviewRepository) Delete(ctx context.Context, reviewID int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM reviews WHERE review_id = $1", reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %d: %w", reviewID, shared.ErrNotFound)
	}

	return nil
}

func scanReview(rows pgx.Rows) (models.Review, error) {
	var review models.Review
	err := rows.Scan(
		&review.ReviewID,
		&review.MusicID,
		&review.Username,
		&review.Rating,
		&review.ReviewTitle,
		&review.ReviewBody,
		&review.CreatedAt,
	)
	if err != nil {
		return models.Review{}, fmt.Errorf("failed to scan review: %w", err)
	}
	return review, nil
}
