// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// searchLimit matches the catalog page size so one provider page maps
	// onto one local page.
	searchLimit = 30

	// providerRate caps outbound requests per second.
	providerRate = 5
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	TotalTracks int             `json:"total_tracks"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	PreviewURL *string         `json:"preview_url"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

type trackPager struct {
	Items []SpotifyTrack `json:"items"`
	Total int            `json:"total"`
}

type albumPager struct {
	Items []SpotifyAlbum `json:"items"`
	Total int            `json:"total"`
}

type searchResponse struct {
	Tracks *trackPager `json:"tracks"`
	Albums *albumPager `json:"albums"`
}

type albumTracksResponse struct {
	Items []AlbumTrack `json:"items"`
	Total int          `json:"total"`
}

// SpotifyService implements the [Catalog] interface for Spotify API interactions.
//
// Authentication uses the refresh-token grant: the stored long-lived refresh
// token is exchanged for short-lived access tokens via [oauth2], which also
// handles re-exchange on expiry. All outbound calls share a rate limiter.
type SpotifyService struct {
	config       *oauth2.Config
	refreshToken string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

// NewSpotifyService creates a new Spotify service with the given credentials.
func NewSpotifyService(creds shared.SpotifyConfig) (*SpotifyService, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	if creds.RefreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	config := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:       config,
		refreshToken: creds.RefreshToken,
		limiter:      rate.NewLimiter(rate.Limit(providerRate), 1),
	}, nil
}

// Authenticate exchanges the stored refresh token for an access token.
//
// The resulting client re-runs the exchange automatically when the access
// token expires, sending the client id/secret as basic auth per the token
// endpoint's requirements.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	source := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: s.refreshToken})

	if _, err := source.Token(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	s.httpClient = oauth2.NewClient(ctx, source)
	return nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated, rate-limited GET against the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.httpClient == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	apiURL := spotifyBaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrProviderRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search queries the provider for tracks or albums matching the query,
// normalized into the local [models.Music] shape in provider ranking order.
func (s *SpotifyService) Search(ctx context.Context, query, kind string) ([]models.Music, error) {
	if kind != "track" && kind != "album" {
		return nil, fmt.Errorf("%w: search type must be track or album", shared.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", kind)
	params.Set("limit", strconv.Itoa(searchLimit))

	var response searchResponse
	if err := s.doRequest(ctx, "/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	var results []models.Music
	switch kind {
	case "track":
		if response.Tracks == nil {
			return nil, nil
		}
		for _, track := range response.Tracks.Items {
			results = append(results, trackToMusic(track))
		}
	case "album":
		if response.Albums == nil {
			return nil, nil
		}
		for _, album := range response.Albums.Items {
			results = append(results, albumToMusic(album))
		}
	}

	return results, nil
}

// AlbumTracks fetches the ordered track listing for an album id.
func (s *SpotifyService) AlbumTracks(ctx context.Context, albumID string) ([]AlbumTrack, error) {
	endpoint := fmt.Sprintf("/albums/%s/tracks?limit=50", url.PathEscape(albumID))

	var response albumTracksResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Items, nil
}

// trackToMusic normalizes a provider track into the local Music shape.
// Album-level fields (art, release date) come from the embedded album.
func trackToMusic(track SpotifyTrack) models.Music {
	item := models.Music{
		MusicID:     track.ID,
		Name:        track.Name,
		Type:        "track",
		AlbumID:     track.Album.ID,
		ReleaseDate: track.Album.ReleaseDate,
	}

	for _, artist := range track.Artists {
		item.ArtistIDs = append(item.ArtistIDs, artist.ID)
		item.ArtistNames = append(item.ArtistNames, artist.Name)
	}

	if track.PreviewURL != nil {
		item.Preview = *track.PreviewURL
	}
	if len(track.Album.Images) > 0 {
		item.AlbumImg = track.Album.Images[0].URL
	}

	return item
}

// albumToMusic normalizes a provider album into the local Music shape.
// Albums carry no preview clip; the track listing is fetched separately.
func albumToMusic(album SpotifyAlbum) models.Music {
	item := models.Music{
		MusicID:     album.ID,
		Name:        album.Name,
		Type:        "album",
		AlbumID:     album.ID,
		ReleaseDate: album.ReleaseDate,
	}

	for _, artist := range album.Artists {
		item.ArtistIDs = append(item.ArtistIDs, artist.ID)
		item.ArtistNames = append(item.ArtistNames, artist.Name)
	}

	if len(album.Images) > 0 {
		item.AlbumImg = album.Images[0].URL
	}

	return item
}
