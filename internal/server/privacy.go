package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/resonate/internal/models"
)

// PolicyStore is the privacy-policy persistence surface consumed by
// [PrivacyHandler].
type PolicyStore interface {
	Latest(ctx context.Context) (models.PrivacyPolicy, error)
}

// PrivacyHandler serves the current privacy-policy text.
type PrivacyHandler struct {
	store PolicyStore
}

func NewPrivacyHandler(store PolicyStore) *PrivacyHandler {
	return &PrivacyHandler{store: store}
}

func (h *PrivacyHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/privacy", Func: h.Latest},
	}
}

func (h *PrivacyHandler) Latest(w http.ResponseWriter, r *http.Request) error {
	policy, err := h.store.Latest(r.Context())
	if err != nil {
		return fmt.Errorf("failed to load privacy policy: %w", err)
	}
	return respondJSON(w, http.StatusOK, map[string]any{"body": policy.Body})
}
