package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/shared"
	mocks "github.com/desertthunder/resonate/internal/testing"
)

func sampleReviews() []models.Review {
	now := time.Now()
	return []models.Review{
		{ReviewID: 3, MusicID: "abc", Username: "cass", Rating: 5, CreatedAt: now},
		{ReviewID: 2, MusicID: "abc", Username: "finn", Rating: 3, CreatedAt: now.Add(-time.Hour)},
		{ReviewID: 1, MusicID: "abc", Username: "ada", Rating: 4, CreatedAt: now.Add(-2 * time.Hour)},
	}
}

func TestReviewsList(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		store := &mocks.MockReviewStore{
			ListAllFunc: func(context.Context) ([]models.Review, error) {
				return sampleReviews(), nil
			},
		}
		mux := newTestMux(t, NewReviewsHandler(store))

		req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", res.Code)
		}
		body := decodeBody(t, res)
		if items, ok := body["reviews"].([]any); !ok || len(items) != 3 {
			t.Errorf("expected 3 reviews, got %v", body["reviews"])
		}
	})

	t.Run("ByMusicEmpty", func(t *testing.T) {
		store := &mocks.MockReviewStore{
			ListByMusicFunc: func(_ context.Context, musicID string) ([]models.Review, error) {
				return nil, nil
			},
		}
		mux := newTestMux(t, NewReviewsHandler(store))

		req := httptest.NewRequest(http.MethodGet, "/reviews/abc", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		body := decodeBody(t, res)
		if items, ok := body["reviews"].([]any); !ok || len(items) != 0 {
			t.Errorf("expected empty array, got %v", body["reviews"])
		}
	})
}

func TestReviewsSplit(t *testing.T) {
	newMux := func(t *testing.T) *Mux {
		return newTestMux(t, NewReviewsHandler(&mocks.MockReviewStore{
			ListByMusicFunc: func(_ context.Context, musicID string) ([]models.Review, error) {
				return sampleReviews(), nil
			},
		}))
	}

	t.Run("OwnReviewSplitOut", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reviews/abc/finn", nil)
		res := httptest.NewRecorder()
		newMux(t).ServeHTTP(res, req)

		body := decodeBody(t, res)
		own, ok := body["user_review"].(map[string]any)
		if !ok {
			t.Fatalf("expected user_review object, got %T", body["user_review"])
		}
		if own["username"] != "finn" {
			t.Errorf("expected finn's review, got %v", own["username"])
		}
		if items := body["reviews"].([]any); len(items) != 2 {
			t.Errorf("expected 2 other reviews, got %d", len(items))
		}
	})

	t.Run("GuestGetsFlatList", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reviews/abc/guest", nil)
		res := httptest.NewRecorder()
		newMux(t).ServeHTTP(res, req)

		body := decodeBody(t, res)
		if body["user_review"] != nil {
			t.Errorf("expected null user_review, got %v", body["user_review"])
		}
		if items := body["reviews"].([]any); len(items) != 3 {
			t.Errorf("expected 3 reviews, got %d", len(items))
		}
	})

	t.Run("NoOwnReview", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reviews/abc/stranger", nil)
		res := httptest.NewRecorder()
		newMux(t).ServeHTTP(res, req)

		body := decodeBody(t, res)
		if body["user_review"] != nil {
			t.Errorf("expected null user_review, got %v", body["user_review"])
		}
	})
}

func TestReviewsCreate(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		store := &mocks.MockReviewStore{
			InsertFunc: func(_ context.Context, musicID, username string, rating int, title, body *string) (models.Review, error) {
				if musicID != "abc" || username != "ada" || rating != 4 {
					t.Errorf("unexpected insert args: %s %s %d", musicID, username, rating)
				}
				return models.Review{ReviewID: 9, MusicID: musicID, Username: username, Rating: rating}, nil
			},
		}
		mux := newTestMux(t, NewReviewsHandler(store))

		payload := `{"username": "ada", "rating": 4, "review_title": "solid"}`
		req := httptest.NewRequest(http.MethodPost, "/reviews/abc", strings.NewReader(payload))
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", res.Code)
		}
		body := decodeBody(t, res)
		review := body["review"].(map[string]any)
		if review["review_id"] != float64(9) {
			t.Errorf("expected review_id 9, got %v", review["review_id"])
		}
	})

	t.Run("RatingOutOfRangeIs400", func(t *testing.T) {
		mux := newTestMux(t, NewReviewsHandler(&mocks.MockReviewStore{}))

		for _, payload := range []string{
			`{"username": "ada", "rating": 0}`,
			`{"username": "ada", "rating": 6}`,
			`{"rating": 3}`,
		} {
			req := httptest.NewRequest(http.MethodPost, "/reviews/abc", strings.NewReader(payload))
			res := httptest.NewRecorder()
			mux.ServeHTTP(res, req)

			if res.Code != http.StatusBadRequest {
				t.Errorf("payload %s: expected 400, got %d", payload, res.Code)
			}
		}
	})
}

func TestReviewsDelete(t *testing.T) {
	t.Run("NoContent", func(t *testing.T) {
		store := &mocks.MockReviewStore{
			DeleteFunc: func(_ context.Context, reviewID int) error {
				if reviewID != 42 {
					t.Errorf("expected id 42, got %d", reviewID)
				}
				return nil
			},
		}
		mux := newTestMux(t, NewReviewsHandler(store))

		req := httptest.NewRequest(http.MethodDelete, "/reviews/42", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", res.Code)
		}
	})

	t.Run("MissingRowIs404", func(t *testing.T) {
		store := &mocks.MockReviewStore{
			DeleteFunc: func(context.Context, int) error {
				return shared.ErrNotFound
			},
		}
		mux := newTestMux(t, NewReviewsHandler(store))

		req := httptest.NewRequest(http.MethodDelete, "/reviews/42", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", res.Code)
		}
	})

	t.Run("NonNumericIDIs400", func(t *testing.T) {
		mux := newTestMux(t, NewReviewsHandler(&mocks.MockReviewStore{}))

		req := httptest.NewRequest(http.MethodDelete, "/reviews/abc", nil)
		res := httptest.NewRecorder()
		mux.ServeHTTP(res, req)

		if res.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", res.Code)
		}
	})
}

func TestReviewsByUser(t *testing.T) {
	store := &mocks.MockReviewStore{
		ListByUserFunc: func(_ context.Context, username string) ([]models.UserReview, error) {
			if username != "ada" {
				t.Errorf("expected ada, got %q", username)
			}
			return []models.UserReview{
				{Review: models.Review{ReviewID: 1, Username: "ada"}, Name: "Kid A"},
			}, nil
		},
	}
	mux := newTestMux(t, NewReviewsHandler(store))

	req := httptest.NewRequest(http.MethodGet, "/users/ada/reviews", nil)
	res := httptest.NewRecorder()
	mux.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	body := decodeBody(t, res)
	items := body["reviews"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 review, got %d", len(items))
	}
	if items[0].(map[string]any)["name"] != "Kid A" {
		t.Errorf("expected joined music name, got %v", items[0])
	}
}
