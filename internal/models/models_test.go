package models

import "testing"

func TestNormalizeReleaseDate(t *testing.T) {
	t.Run("YearOnly", func(t *testing.T) {
		if got := NormalizeReleaseDate("1995"); got != "1995-01-01" {
			t.Errorf("expected 1995-01-01, got %s", got)
		}
	})

	t.Run("YearMonth", func(t *testing.T) {
		if got := NormalizeReleaseDate("2020-03"); got != "2020-03-01" {
			t.Errorf("expected 2020-03-01, got %s", got)
		}
	})

	t.Run("FullDate", func(t *testing.T) {
		if got := NormalizeReleaseDate("2013-06-18"); got != "2013-06-18" {
			t.Errorf("expected 2013-06-18, got %s", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := NormalizeReleaseDate(""); got != "" {
			t.Errorf("expected empty string, got %s", got)
		}
	})
}
