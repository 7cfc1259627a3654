// package testing contains shared testing utilities
package testing

import (
	"context"
	"net/http"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/services"
)

// MockCatalog is a test double for [services.Catalog]. Unset function
// fields fall back to empty successful responses.
type MockCatalog struct {
	AuthenticateFunc func(ctx context.Context) error
	SearchFunc       func(ctx context.Context, query, kind string) ([]models.Music, error)
	AlbumTracksFunc  func(ctx context.Context, albumID string) ([]services.AlbumTrack, error)
}

func (m *MockCatalog) Authenticate(ctx context.Context) error {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx)
	}
	return nil
}

func (m *MockCatalog) Search(ctx context.Context, query, kind string) ([]models.Music, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, kind)
	}
	return nil, nil
}

func (m *MockCatalog) AlbumTracks(ctx context.Context, albumID string) ([]services.AlbumTrack, error) {
	if m.AlbumTracksFunc != nil {
		return m.AlbumTracksFunc(ctx, albumID)
	}
	return nil, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// MockMusicStore is a function-field test double for the music catalog store.
type MockMusicStore struct {
	ListFunc          func(ctx context.Context, filter models.MusicFilter) ([]models.Music, error)
	InsertFunc        func(ctx context.Context, items []models.Music) ([]models.Music, error)
	StoredByIDsFunc   func(ctx context.Context, ids []string) ([]models.Music, error)
	InsertMissingFunc func(ctx context.Context, items []models.Music) ([]models.Music, error)
}

func (m *MockMusicStore) List(ctx context.Context, filter models.MusicFilter) ([]models.Music, error) {
	return m.ListFunc(ctx, filter)
}

func (m *MockMusicStore) Insert(ctx context.Context, items []models.Music) ([]models.Music, error) {
	return m.InsertFunc(ctx, items)
}

func (m *MockMusicStore) StoredByIDs(ctx context.Context, ids []string) ([]models.Music, error) {
	if m.StoredByIDsFunc != nil {
		return m.StoredByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockMusicStore) InsertMissing(ctx context.Context, items []models.Music) ([]models.Music, error) {
	if m.InsertMissingFunc != nil {
		return m.InsertMissingFunc(ctx, items)
	}
	return items, nil
}

// MockReviewStore is a function-field test double for the review store.
type MockReviewStore struct {
	ListAllFunc     func(ctx context.Context) ([]models.Review, error)
	ListByMusicFunc func(ctx context.Context, musicID string) ([]models.Review, error)
	ListByUserFunc  func(ctx context.Context, username string) ([]models.UserReview, error)
	InsertFunc      func(ctx context.Context, musicID, username string, rating int, title, body *string) (models.Review, error)
	DeleteFunc      func(ctx context.Context, reviewID int) error
}

func (m *MockReviewStore) ListAll(ctx context.Context) ([]models.Review, error) {
	return m.ListAllFunc(ctx)
}

func (m *MockReviewStore) ListByMusic(ctx context.Context, musicID string) ([]models.Review, error) {
	return m.ListByMusicFunc(ctx, musicID)
}

func (m *MockReviewStore) ListByUser(ctx context.Context, username string) ([]models.UserReview, error) {
	return m.ListByUserFunc(ctx, username)
}

func (m *MockReviewStore) Insert(ctx context.Context, musicID, username string, rating int, title, body *string) (models.Review, error) {
	return m.InsertFunc(ctx, musicID, username, rating, title, body)
}

func (m *MockReviewStore) Delete(ctx context.Context, reviewID int) error {
	return m.DeleteFunc(ctx, reviewID)
}

// MockUserStore is a function-field test double for the follow-list store.
type MockUserStore struct {
	FollowingFunc func(ctx context.Context, username string) ([]string, error)
	FollowFunc    func(ctx context.Context, username, target string) ([]string, error)
	UnfollowFunc  func(ctx context.Context, username, target string) ([]string, error)
	SearchFunc    func(ctx context.Context, substring string) ([]string, error)
}

func (m *MockUserStore) Following(ctx context.Context, username string) ([]string, error) {
	return m.FollowingFunc(ctx, username)
}

func (m *MockUserStore) Follow(ctx context.Context, username, target string) ([]string, error) {
	return m.FollowFunc(ctx, username, target)
}

func (m *MockUserStore) Unfollow(ctx context.Context, username, target string) ([]string, error) {
	return m.UnfollowFunc(ctx, username, target)
}

func (m *MockUserStore) Search(ctx context.Context, substring string) ([]string, error) {
	return m.SearchFunc(ctx, substring)
}

// MockPolicyStore is a function-field test double for the policy store.
type MockPolicyStore struct {
	LatestFunc func(ctx context.Context) (models.PrivacyPolicy, error)
}

func (m *MockPolicyStore) Latest(ctx context.Context) (models.PrivacyPolicy, error) {
	return m.LatestFunc(ctx)
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
