// package models defines the data model for the music review service
package models

import (
	"time"
)

// Music represents one catalog entry, either a track or an album.
//
// Identity is the provider-assigned id; rows written during search
// reconciliation keep the provider's id untouched so later lookups by id
// hit the stored copy.
type Music struct {
	MusicID     string   `json:"music_id"`
	ArtistIDs   []string `json:"artist_ids"`
	ArtistNames []string `json:"artist_names"`
	Name        string   `json:"name"`
	Type        string   `json:"type"` // "track" or "album"
	Tracks      []string `json:"tracks"`
	AlbumID     string   `json:"album_id"`
	Genres      []string `json:"genres"`
	Preview     string   `json:"preview"`
	AlbumImg    string   `json:"album_img"`
	ReleaseDate string   `json:"release_date"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
}

// Review is a single user review of a music entry.
type Review struct {
	ReviewID    int       `json:"review_id"`
	MusicID     string    `json:"music_id"`
	Username    string    `json:"username"`
	Rating      int       `json:"rating"`
	ReviewTitle *string   `json:"review_title"`
	ReviewBody  *string   `json:"review_body"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserReview is a review joined with the music metadata needed to render a
// user's review history without a second lookup.
type UserReview struct {
	Review
	ArtistNames []string `json:"artist_names"`
	Name        string   `json:"name"`
	AlbumImg    string   `json:"album_img"`
}

// FollowList is the ordered list of usernames a user follows.
type FollowList struct {
	Username  string   `json:"username"`
	Following []string `json:"following"`
}

// PrivacyPolicy is one revision of the privacy-policy text. Revisions are
// append-only; the highest id is authoritative.
type PrivacyPolicy struct {
	ID   int    `json:"id"`
	Body string `json:"body"`
}

// MusicFilter holds the optional filters for catalog listing. Zero values
// mean "not supplied" and emit no SQL clause.
type MusicFilter struct {
	MusicID   string
	ArtistID  string
	Genre     string
	Order     string // "ASC" or "DESC"
	Page      int
	AvgRating bool
}

// NormalizeReleaseDate pads partial provider release dates to full dates.
//
// Spotify reports release_date at year, month, or day precision; the
// catalog stores a DATE, so "1995" becomes "1995-01-01" and "2020-03"
// becomes "2020-03-01". Full dates pass through unchanged.
func NormalizeReleaseDate(date string) string {
	switch len(date) {
	case 4:
		return date + "-01-01"
	case 7:
		return date + "-01"
	default:
		return date
	}
}
