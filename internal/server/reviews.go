package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/go-chi/chi/v5"
)

// guestUser is the username the frontend sends for logged-out visitors.
// Guests get the flat review list with no personal split.
const guestUser = "guest"

// ReviewStore is the review persistence surface consumed by [ReviewsHandler].
type ReviewStore interface {
	ListAll(ctx context.Context) ([]models.Review, error)
	ListByMusic(ctx context.Context, musicID string) ([]models.Review, error)
	ListByUser(ctx context.Context, username string) ([]models.UserReview, error)
	Insert(ctx context.Context, musicID, username string, rating int, title, body *string) (models.Review, error)
	Delete(ctx context.Context, reviewID int) error
}

// ReviewsHandler serves the review endpoints, including the per-user review
// history exposed under /users.
type ReviewsHandler struct {
	store ReviewStore
}

func NewReviewsHandler(store ReviewStore) *ReviewsHandler {
	return &ReviewsHandler{store: store}
}

func (h *ReviewsHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/reviews", Func: h.ListAll},
		{Method: http.MethodGet, Pattern: "/reviews/{music_id}", Func: h.ListByMusic},
		{Method: http.MethodGet, Pattern: "/reviews/{music_id}/{username}", Func: h.ListSplit},
		{Method: http.MethodPost, Pattern: "/reviews/{music_id}", Func: h.Create},
		{Method: http.MethodDelete, Pattern: "/reviews/{review_id}", Func: h.Delete},
		{Method: http.MethodGet, Pattern: "/users/{username}/reviews", Func: h.ListByUser},
	}
}

func (h *ReviewsHandler) ListAll(w http.ResponseWriter, r *http.Request) error {
	reviews, err := h.store.ListAll(r.Context())
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}
	return respondJSON(w, http.StatusOK, map[string]any{"reviews": nonNilReviews(reviews)})
}

func (h *ReviewsHandler) ListByMusic(w http.ResponseWriter, r *http.Request) error {
	musicID := chi.URLParam(r, "music_id")
	reviews, err := h.store.ListByMusic(r.Context(), musicID)
	if err != nil {
		return fmt.Errorf("failed to list reviews for %s: %w", musicID, err)
	}
	return respondJSON(w, http.StatusOK, map[string]any{"reviews": nonNilReviews(reviews)})
}

// ListSplit returns reviews for a music entry partitioned into the
// requesting user's own review and everyone else's. Guests see the flat
// list with a null user review.
func (h *ReviewsHandler) ListSplit(w http.ResponseWriter, r *http.Request) error {
	musicID := chi.URLParam(r, "music_id")
	username := chi.URLParam(r, "username")

	reviews, err := h.store.ListByMusic(r.Context(), musicID)
	if err != nil {
		return fmt.Errorf("failed to list reviews for %s: %w", musicID, err)
	}

	var userReview *models.Review
	others := []models.Review{}
	for i, review := range reviews {
		if username != guestUser && review.Username == username && userReview == nil {
			userReview = &reviews[i]
			continue
		}
		others = append(others, review)
	}

	return respondJSON(w, http.StatusOK, map[string]any{
		"user_review": userReview,
		"reviews":     others,
	})
}

func (h *ReviewsHandler) ListByUser(w http.ResponseWriter, r *http.Request) error {
	username := chi.URLParam(r, "username")
	reviews, err := h.store.ListByUser(r.Context(), username)
	if err != nil {
		return fmt.Errorf("failed to list reviews by %s: %w", username, err)
	}
	if reviews == nil {
		reviews = []models.UserReview{}
	}
	return respondJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) error {
	musicID := chi.URLParam(r, "music_id")

	var body struct {
		Username    string  `json:"username"`
		Rating      int     `json:"rating"`
		ReviewTitle *string `json:"review_title"`
		ReviewBody  *string `json:"review_body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return fmt.Errorf("malformed review body: %w", shared.ErrInvalidInput)
	}

	if body.Username == "" {
		return fmt.Errorf("username is required: %w", shared.ErrInvalidInput)
	}
	if body.Rating < 1 || body.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", shared.ErrInvalidInput)
	}

	review, err := h.store.Insert(r.Context(), musicID, body.Username, body.Rating, body.ReviewTitle, body.ReviewBody)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return respondJSON(w, http.StatusCreated, map[string]any{"review": review})
}

func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	reviewID, err := strconv.Atoi(chi.URLParam(r, "review_id"))
	if err != nil {
		return fmt.Errorf("review_id must be an integer: %w", shared.ErrInvalidInput)
	}

	if err := h.store.Delete(r.Context(), reviewID); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func nonNilReviews(reviews []models.Review) []models.Review {
	if reviews == nil {
		return []models.Review{}
	}
	return reviews
}
