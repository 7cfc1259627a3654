package repositories

import (
	"strings"
	"testing"

	"github.com/desertthunder/resonate/internal/models"
)

func TestBuildListQuery(t *testing.T) {
	t.Run("NoFilters", func(t *testing.T) {
		query, args := BuildListQuery(models.MusicFilter{})

		if strings.Contains(query, "WHERE") {
			t.Errorf("no filters should emit no WHERE clause, got: %s", query)
		}
		if strings.Contains(query, "JOIN") {
			t.Errorf("no avg_rating should emit no JOIN, got: %s", query)
		}
		if !strings.Contains(query, "ORDER BY release_date DESC") {
			t.Errorf("expected default DESC ordering, got: %s", query)
		}
		if !strings.Contains(query, "LIMIT 30") {
			t.Errorf("expected page size limit, got: %s", query)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("MusicIDFilter", func(t *testing.T) {
		query, args := BuildListQuery(models.MusicFilter{MusicID: "abc123"})

		if !strings.Contains(query, "WHERE music.music_id = $1") {
			t.Errorf("expected parameterized music_id filter, got: %s", query)
		}
		if len(args) != 1 || args[0] != "abc123" {
			t.Errorf("expected [abc123], got %v", args)
		}
	})

	t.Run("CombinedFilters", func(t *testing.T) {
		query, args := BuildListQuery(models.MusicFilter{ArtistID: "a1", Genre: "rock"})

		if !strings.Contains(query, "$1 = ANY(artist_ids) AND $2 = ANY(genres)") {
			t.Errorf("filters should combine with AND, got: %s", query)
		}
		if len(args) != 2 {
			t.Fatalf("expected 2 args, got %v", args)
		}
		if args[1] != "Rock" {
			t.Errorf("genre should be capitalized, got %v", args[1])
		}
	})

	t.Run("Ascending", func(t *testing.T) {
		query, _ := BuildListQuery(models.MusicFilter{Order: "ASC"})

		if !strings.Contains(query, "ORDER BY release_date ASC") {
			t.Errorf("expected ASC ordering, got: %s", query)
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		query, args := BuildListQuery(models.MusicFilter{Page: 3})

		if !strings.Contains(query, "OFFSET $1") {
			t.Errorf("expected parameterized offset, got: %s", query)
		}
		if len(args) != 1 || args[0] != 60 {
			t.Errorf("page 3 should offset 60 rows, got %v", args)
		}
	})

	t.Run("FirstPageNoOffset", func(t *testing.T) {
		query, _ := BuildListQuery(models.MusicFilter{Page: 1})

		if strings.Contains(query, "OFFSET") {
			t.Errorf("first page should emit no OFFSET, got: %s", query)
		}
	})

	t.Run("AverageRating", func(t *testing.T) {
		query, _ := BuildListQuery(models.MusicFilter{AvgRating: true})

		if !strings.Contains(query, "ROUND(AVG(reviews.rating), 1)") {
			t.Errorf("expected aggregate column, got: %s", query)
		}
		if !strings.Contains(query, "LEFT JOIN reviews ON music.music_id = reviews.music_id") {
			t.Errorf("expected reviews join, got: %s", query)
		}
		if !strings.Contains(query, "GROUP BY music.music_id") {
			t.Errorf("expected GROUP BY, got: %s", query)
		}
	})

	t.Run("InterpolationFree", func(t *testing.T) {
		// Filter values must never appear in the SQL text itself.
		injected := "x'; DROP TABLE music; --"
		query, args := BuildListQuery(models.MusicFilter{MusicID: injected})

		if strings.Contains(query, injected) {
			t.Errorf("filter value leaked into SQL text: %s", query)
		}
		if len(args) != 1 || args[0] != injected {
			t.Errorf("filter value should be bound as arg, got %v", args)
		}
	})
}

func TestCapitalizeFirst(t *testing.T) {
	cases := map[string]string{
		"rock":    "Rock",
		"hip hop": "Hip hop",
		"Rock":    "Rock",
		"":        "",
	}

	for input, want := range cases {
		if got := capitalizeFirst(input); got != want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestPlaceholderList(t *testing.T) {
	if got := placeholderList(4, 3); got != "$4, $5, $6" {
		t.Errorf("expected $4, $5, $6, got %s", got)
	}
	if got := placeholderList(1, 1); got != "$1" {
		t.Errorf("expected $1, got %s", got)
	}
}
