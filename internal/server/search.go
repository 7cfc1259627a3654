package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/resonate/internal/models"
	"github.com/desertthunder/resonate/internal/services"
	"github.com/desertthunder/resonate/internal/shared"
	"github.com/desertthunder/resonate/internal/tasks"
	"github.com/go-chi/chi/v5"
)

// SearchHandler proxies catalog searches to the streaming provider and
// reconciles the results with locally stored rows before responding.
type SearchHandler struct {
	catalog services.Catalog
	engine  *tasks.ReconcileEngine
}

func NewSearchHandler(catalog services.Catalog, engine *tasks.ReconcileEngine) *SearchHandler {
	return &SearchHandler{catalog: catalog, engine: engine}
}

func (h *SearchHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: "/search", Func: h.Search},
		{Method: http.MethodGet, Pattern: "/search/{music_id}/tracks", Func: h.AlbumTracks},
	}
}

// Search runs a provider search and returns the reconciled records. Provider
// failures surface to the caller as a 502 instead of an empty result.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) error {
	var body struct {
		Query string `json:"query"`
		Type  string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return fmt.Errorf("malformed search body: %w", shared.ErrInvalidInput)
	}
	if body.Query == "" {
		return fmt.Errorf("query is required: %w", shared.ErrInvalidInput)
	}
	if body.Type == "" {
		body.Type = "track"
	}

	results, err := h.catalog.Search(r.Context(), body.Query, body.Type)
	if err != nil {
		return fmt.Errorf("%s search failed: %w", h.catalog.Name(), err)
	}

	merged, err := h.engine.Reconcile(r.Context(), results)
	if err != nil {
		return fmt.Errorf("failed to reconcile search results: %w", err)
	}
	if merged == nil {
		merged = []models.Music{}
	}

	return respondJSON(w, http.StatusOK, map[string]any{"music": merged})
}

// AlbumTracks fetches an album's track listing straight from the provider.
func (h *SearchHandler) AlbumTracks(w http.ResponseWriter, r *http.Request) error {
	albumID := chi.URLParam(r, "music_id")

	tracks, err := h.catalog.AlbumTracks(r.Context(), albumID)
	if err != nil {
		return fmt.Errorf("%s album lookup failed: %w", h.catalog.Name(), err)
	}
	if tracks == nil {
		tracks = []services.AlbumTrack{}
	}

	return respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}
