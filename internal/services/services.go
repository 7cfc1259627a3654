// package services defines interface Catalog for interacting with the
// external music catalog over HTTP
package services

import (
	"context"

	"github.com/desertthunder/resonate/internal/models"
)

// Catalog defines the interface for the external music catalog provider.
type Catalog interface {
	// Authenticate exchanges stored credentials for a usable access token.
	// Returns an error if the exchange fails.
	Authenticate(ctx context.Context) error

	// Search queries the provider for tracks or albums matching a free-text
	// query, normalized into the local Music shape in provider ranking order.
	// kind is "track" or "album".
	Search(ctx context.Context, query, kind string) ([]models.Music, error)

	// AlbumTracks fetches the ordered track listing for an album id,
	// passed through unprocessed.
	AlbumTracks(ctx context.Context, albumID string) ([]AlbumTrack, error)

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}

// AlbumTrack is one entry of an album's track listing, kept in the
// provider's wire shape.
type AlbumTrack struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Artists     []AlbumArtist `json:"artists"`
	DurationMS  int           `json:"duration_ms"`
	TrackNumber int           `json:"track_number"`
	PreviewURL  *string       `json:"preview_url"`
}

// AlbumArtist is the simplified artist object embedded in track listings.
type AlbumArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
