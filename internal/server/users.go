package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/resonate/internal/shared"
	"github.com/go-chi/chi/v5"
)

// UserStore is the follow-list persistence surface consumed by [UsersHandler].
type UserStore interface {
	Following(ctx context.Context, username string) ([]string, error)
	Follow(ctx context.Context, username, target string) ([]string, error)
	Unfollow(ctx context.Context, username, target string) ([]string, error)
	Search(ctx context.Context, substring string) ([]string, error)
}

// UsersHandler serves username search and the follow-list endpoints.
type UsersHandler struct {
	store UserStore
}

func NewUsersHandler(store UserStore) *UsersHandler {
	return &UsersHandler{store: store}
}

func (h *UsersHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/users/{username}", Func: h.Search},
		{Method: http.MethodGet, Pattern: "/users/{username}/followers", Func: h.Following},
		{Method: http.MethodPatch, Pattern: "/users/{username}/followers", Func: h.Toggle},
	}
}

// Search matches usernames by substring, case-insensitive.
func (h *UsersHandler) Search(w http.ResponseWriter, r *http.Request) error {
	substring := chi.URLParam(r, "username")
	usernames, err := h.store.Search(r.Context(), substring)
	if err != nil {
		return fmt.Errorf("failed to search users: %w", err)
	}

	users := make([]map[string]string, 0, len(usernames))
	for _, username := range usernames {
		users = append(users, map[string]string{"username": username})
	}
	return respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UsersHandler) Following(w http.ResponseWriter, r *http.Request) error {
	username := chi.URLParam(r, "username")
	following, err := h.store.Following(r.Context(), username)
	if err != nil {
		return err
	}
	if following == nil {
		following = []string{}
	}
	return respondJSON(w, http.StatusOK, map[string]any{"following": following})
}

// Toggle follows or unfollows a target user depending on the request body's
// follow_request flag.
func (h *UsersHandler) Toggle(w http.ResponseWriter, r *http.Request) error {
	username := chi.URLParam(r, "username")

	var body struct {
		NewFollow     string `json:"new_follow"`
		FollowRequest bool   `json:"follow_request"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return fmt.Errorf("malformed follow body: %w", shared.ErrInvalidInput)
	}
	if body.NewFollow == "" {
		return fmt.Errorf("new_follow is required: %w", shared.ErrInvalidInput)
	}

	if body.FollowRequest {
		if _, err := h.store.Follow(r.Context(), username, body.NewFollow); err != nil {
			return err
		}
		return respondMsg(w, http.StatusOK, fmt.Sprintf("%s is now following %s", username, body.NewFollow))
	}

	if _, err := h.store.Unfollow(r.Context(), username, body.NewFollow); err != nil {
		return err
	}
	return respondMsg(w, http.StatusOK, fmt.Sprintf("%s is no longer following %s", username, body.NewFollow))
}
