package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/shared"
)

// MusicStore is the catalog persistence surface consumed by [MusicHandler].
type MusicStore interface {
	List(ctx context.Context, filter models.MusicFilter) ([]models.Music, error)
	Insert(ctx context.Context, items []models.Music) ([]models.Music, error)
}

// MusicHandler serves the music catalog endpoints.
type MusicHandler struct {
	store MusicStore
}

func NewMusicHandler(store MusicStore) *MusicHandler {
	return &MusicHandler{store: store}
}

func (h *MusicHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/music", Func: h.List},
		{Method: http.MethodPost, Pattern: "/music", Func: h.Insert},
	}
}

// List returns catalog entries matching the query string filters. A
// music_id filter identifies at most one record, so the response carries a
// single object for it and an array otherwise.
func (h *MusicHandler) List(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseMusicFilter(r)
	if err != nil {
		return err
	}

	items, err := h.store.List(r.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list music: %w", err)
	}

	if filter.MusicID != "" {
		if len(items) == 0 {
			return shared.NewAPIError(http.StatusNotFound, "not found")
		}
		return respondJSON(w, http.StatusOK, map[string]any{"music": items[0]})
	}

	if items == nil {
		items = []models.Music{}
	}
	return respondJSON(w, http.StatusOK, map[string]any{"music": items})
}

// Insert stores one or more catalog entries. The body may be a single JSON
// object or an array of objects.
func (h *MusicHandler) Insert(w http.ResponseWriter, r *http.Request) error {
	items, err := decodeMusicBody(r.Body)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.MusicID == "" || item.Name == "" {
			return fmt.Errorf("music_id and name are required: %w", shared.ErrInvalidInput)
		}
	}

	inserted, err := h.store.Insert(r.Context(), items)
	if err != nil {
		return fmt.Errorf("failed to insert music: %w", err)
	}

	return respondJSON(w, http.StatusCreated, map[string]any{"music": inserted})
}

func parseMusicFilter(r *http.Request) (models.MusicFilter, error) {
	q := r.URL.Query()
	filter := models.MusicFilter{
		MusicID:  q.Get("music_id"),
		ArtistID: q.Get("artist_ids"),
		Genre:    q.Get("genres"),
	}

	switch order := q.Get("order"); order {
	case "", "ASC", "DESC":
		filter.Order = order
	default:
		return filter, fmt.Errorf("order must be ASC or DESC: %w", shared.ErrInvalidInput)
	}

	if raw := q.Get("p"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return filter, fmt.Errorf("p must be a positive integer: %w", shared.ErrInvalidInput)
		}
		filter.Page = page
	}

	filter.AvgRating = q.Get("avg_rating") == "true"
	return filter, nil
}

// decodeMusicBody accepts either a bare object or an array of objects.
func decodeMusicBody(body io.Reader) ([]models.Music, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty request body: %w", shared.ErrInvalidInput)
	}

	if trimmed[0] == '[' {
		var items []models.Music
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("malformed music array: %w", shared.ErrInvalidInput)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("empty music array: %w", shared.ErrInvalidInput)
		}
		return items, nil
	}

	var item models.Music
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return nil, fmt.Errorf("malformed music object: %w", shared.ErrInvalidInput)
	}
	return []models.Music{item}, nil
}
